package importer

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_ResolveOrCreate(t *testing.T) {
	registry := NewRegistry[string]("people")
	builds := 0
	build := func() string {
		builds++
		return "Wagenseil"
	}

	first, created := registry.ResolveOrCreate("Wagenseil", build)
	assert.True(t, created)
	assert.Equal(t, "Wagenseil", first)

	second, created := registry.ResolveOrCreate("Wagenseil", build)
	assert.False(t, created)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry[int]("issues")
	registry.ResolveOrCreate("KA_1_2", func() int { return 12 })

	value, ok := registry.Get("KA_1_2")
	assert.True(t, ok)
	assert.Equal(t, 12, value)

	_, ok = registry.Get("KA_1_3")
	assert.False(t, ok)
}

func TestRegistry_AnonymousEntriesAreDistinct(t *testing.T) {
	registry := NewRegistry[string]("translators")
	registry.ResolveOrCreate("Wagenseil", func() string { return "Wagenseil" })

	first := registry.AppendAnonymous(func(n int) string { return fmt.Sprintf("Anon_%d", n) })
	second := registry.AppendAnonymous(func(n int) string { return fmt.Sprintf("Anon_%d", n) })

	assert.Equal(t, "Anon_1", first)
	assert.Equal(t, "Anon_2", second)
	assert.Equal(t, []string{"Anon_1", "Anon_2"}, registry.Anonymous())
	assert.Equal(t, []string{"Wagenseil", "Anon_1", "Anon_2"}, registry.Values())
	assert.Equal(t, 3, registry.Len())

	_, ok := registry.Get("Anon")
	assert.False(t, ok, "anonymous entries are not keyed")
}

func TestRegistry_ValuesKeepCreationOrder(t *testing.T) {
	registry := NewRegistry[string]("languages")
	for _, code := range []string{"EN", "DE", "FR", "DE"} {
		registry.ResolveOrCreate(code, func() string { return code })
	}

	assert.Equal(t, []string{"EN", "DE", "FR"}, registry.Values())
}

func TestRegistry_OnCreateFiresOncePerEntry(t *testing.T) {
	registry := NewRegistry[string]("names")
	var calls []string
	registry.onCreate = func(category, entry string) { calls = append(calls, category+":"+entry) }

	registry.ResolveOrCreate("Louise", func() string { return "Louise" })
	registry.ResolveOrCreate("Louise", func() string { return "Louise" })
	registry.AppendAnonymous(func(int) string { return "Anon" })

	assert.Equal(t, []string{"names:Louise", "names:Anon"}, calls)
}

func TestRegistry_ConcurrentResolve(t *testing.T) {
	registry := NewRegistry[int]("journals")
	var builds sync.Map
	var wg sync.WaitGroup

	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				key := fmt.Sprintf("journal_%d", i)
				registry.ResolveOrCreate(key, func() int {
					if _, loaded := builds.LoadOrStore(key, true); loaded {
						t.Errorf("built %s twice", key)
					}
					return i
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, registry.Len())
}
