package tabular

import "github.com/go-playground/validator/v10"

var recordValidate = validator.New()

// TranslationRecord is one row of a translations table: a constituent text
// published in a journal issue.
type TranslationRecord struct {
	LanguageArea     string `mapstructure:"Language_area"`
	Journal          string `mapstructure:"Journal" validate:"required"`
	Year             string `mapstructure:"Year"`
	IssueID          string `mapstructure:"Issue_ID"`
	Vol              string `mapstructure:"Vol"`
	No               string `mapstructure:"No"`
	ListedTranslator string `mapstructure:"Listed_Translator"`
	Translator       string `mapstructure:"Translator"`
	Author           string `mapstructure:"Author"`
	Title            string `mapstructure:"Title"`
	Genre            string `mapstructure:"Genre"`
	SL               string `mapstructure:"SL"`
	TL               string `mapstructure:"TL"`
	Notes            string `mapstructure:"Notes"`
}

// Validate checks the required fields.
func (r *TranslationRecord) Validate() error {
	return recordValidate.Struct(r)
}

// TranslatorRecord is one row of a translators table: biographical data
// for a person already named in a translations table.
type TranslatorRecord struct {
	LanguageArea string `mapstructure:"Language_area"`
	SurnameName  string `mapstructure:"Surname_Name" validate:"required"`
	Pseudonyms   string `mapstructure:"Pseudonyms"`
	YearBirth    string `mapstructure:"Year_Birth"`
	YearDeath    string `mapstructure:"Year_Death"`
	Nationality  string `mapstructure:"Nationality"`
	Gender       string `mapstructure:"Gender"`
	Journals     string `mapstructure:"Journals"`
	Notes        string `mapstructure:"Notes"`
}

// Validate checks the required fields.
func (r *TranslatorRecord) Validate() error {
	return recordValidate.Struct(r)
}

// Columns every translations table must carry.
var translationColumns = []string{"Journal", "Year", "Issue_ID"}

// Columns every translators table must carry.
var translatorColumns = []string{
	"Language_area",
	"Surname_Name",
	"Pseudonyms",
	"Year_Birth",
	"Year_Death",
	"Nationality",
	"Gender",
}
