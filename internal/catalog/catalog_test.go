package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonBeak/signquote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinLookups(t *testing.T) {
	c := Builtin()

	ps, err := c.PowerSupply("ps3")
	require.NoError(t, err)
	assert.Equal(t, 135.0, ps.Watts)
	assert.True(t, ps.ULListed)

	_, err = c.PowerSupply("nope")
	assert.Error(t, err, "missing SKU must be a hard error")

	listed := c.ULPowerSupplies()
	require.Len(t, listed, 2)
	assert.Equal(t, "ps2", listed[0].Code)
	assert.Equal(t, "ps3", listed[1].Code)

	led, err := c.LedType("led_std")
	require.NoError(t, err)
	assert.Equal(t, 1.2, led.WattsPerLed)

	_, err = c.Rate("no_such_rate")
	assert.Error(t, err, "missing rate must be a hard error, never zero")
}

func TestPowerSupplyMissingWattage(t *testing.T) {
	c := &Catalog{PowerSupplies: []PowerSupply{{Code: "bad", Watts: 0}}}
	_, err := c.PowerSupply("bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wattage")
}

func TestCatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")

	original := Builtin()
	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original.PowerSupplies, loaded.PowerSupplies)
	assert.Equal(t, original.Rates, loaded.Rates)
}

func TestLoadMissingCatalog(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

type countingSource struct {
	calls int
	prefs model.CustomerPreferences
	err   error
}

func (s *countingSource) Fetch(string) (model.CustomerPreferences, error) {
	s.calls++
	return s.prefs, s.err
}

func TestPreferenceStoreCachesWithinTTL(t *testing.T) {
	src := &countingSource{prefs: model.CustomerPreferences{CustomerID: "c1", UseLeds: true, WattsPerLed: 1.0}}
	store := NewPreferenceStore(src, time.Minute)

	first := store.Get("c1")
	second := store.Get("c1")
	assert.Equal(t, 1, src.calls, "second lookup should hit the cache")
	assert.True(t, first.UseLeds)
	assert.Equal(t, first, second)
}

func TestPreferenceStoreExpiry(t *testing.T) {
	src := &countingSource{prefs: model.CustomerPreferences{CustomerID: "c1"}}
	store := NewPreferenceStore(src, time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	store.Get("c1")
	current = current.Add(2 * time.Minute)
	store.Get("c1")
	assert.Equal(t, 2, src.calls, "expired entry should refetch")
}

func TestPreferenceStoreInvalidate(t *testing.T) {
	src := &countingSource{prefs: model.CustomerPreferences{CustomerID: "c1"}}
	store := NewPreferenceStore(src, time.Minute)

	store.Get("c1")
	store.Invalidate("c1")
	store.Get("c1")
	assert.Equal(t, 2, src.calls)
}

func TestPreferenceStoreFailureResolvesDefaults(t *testing.T) {
	src := &countingSource{err: os.ErrNotExist}
	store := NewPreferenceStore(src, time.Minute)

	prefs := store.Get("missing")
	assert.Equal(t, model.DefaultPreferences(), prefs)

	assert.Equal(t, model.DefaultPreferences(), store.Get(""), "empty customer id uses defaults without a fetch")
}

func TestPreferenceStoreResolvesFallbackFields(t *testing.T) {
	src := &countingSource{prefs: model.CustomerPreferences{CustomerID: "c1", UseLeds: true}}
	store := NewPreferenceStore(src, time.Minute)

	prefs := store.Get("c1")
	assert.Equal(t, model.DefaultWattsPerLed, prefs.WattsPerLed)
	assert.Equal(t, model.DefaultPowerSupplyType, prefs.PowerSupplyType)
	assert.Equal(t, model.DefaultShippingMultiplier, prefs.ShippingMultiplier)
}

func TestLoadPreferencesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.yaml")
	content := `
acme:
  use_leds: true
  led_type: led_std
  require_ul: true
  power_supply_type: ps3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	src, err := LoadPreferences(path)
	require.NoError(t, err)

	prefs, err := src.Fetch("acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", prefs.CustomerID)
	assert.True(t, prefs.UseLeds)
	assert.True(t, prefs.RequireUL)
	assert.Equal(t, "ps3", prefs.PowerSupplyType)

	_, err = src.Fetch("unknown")
	assert.Error(t, err)
}
