package arsenal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWeapon() *WeaponDef {
	return &WeaponDef{
		ID:               "10mm_pistol",
		Name:             "10mm Pistol",
		Skill:            "small_guns",
		Range:            25,
		BaseDamage:       12,
		AmmoType:         "10mm",
		MagazineCapacity: 12,
		FiringModes:      []FiringMode{FiringModeSingle},
	}
}

func TestWeaponDef_Validate(t *testing.T) {
	assert.NoError(t, validWeapon().Validate())
}

func TestWeaponDef_ValidateRejectsMissingFields(t *testing.T) {
	cases := map[string]func(*WeaponDef){
		"empty id":      func(w *WeaponDef) { w.ID = "" },
		"empty name":    func(w *WeaponDef) { w.Name = "" },
		"empty skill":   func(w *WeaponDef) { w.Skill = "" },
		"zero range":    func(w *WeaponDef) { w.Range = 0 },
		"zero damage":   func(w *WeaponDef) { w.BaseDamage = 0 },
		"zero magazine": func(w *WeaponDef) { w.MagazineCapacity = 0 },
	}
	for name, mutate := range cases {
		w := validWeapon()
		mutate(w)
		assert.Error(t, w.Validate(), name)
	}
}

func TestWeaponDef_MeleeNeedsNoMagazine(t *testing.T) {
	w := validWeapon()
	w.AmmoType = ""
	w.MagazineCapacity = 0
	assert.NoError(t, w.Validate())
	assert.True(t, w.IsMelee())
}

func TestWeaponDef_SupportsBurst(t *testing.T) {
	w := validWeapon()
	assert.False(t, w.SupportsBurst())
	w.FiringModes = append(w.FiringModes, FiringModeBurst)
	assert.True(t, w.SupportsBurst())
}

func TestWeaponDef_Profile(t *testing.T) {
	w := validWeapon()
	w.DamageBonus = 3
	p := w.Profile()
	assert.Equal(t, "10mm Pistol", p.Name)
	assert.Equal(t, 25.0, p.Range)
	assert.Equal(t, 12, p.BaseDamage)
	assert.Equal(t, 3, p.DamageBonus)
	assert.Equal(t, "10mm", p.AmmoType)
	assert.Equal(t, "small_guns", p.Skill)
}

func TestLoadWeapons(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weapons.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
weapons:
  - id: 10mm_pistol
    name: 10mm Pistol
    skill: small_guns
    range: 25
    base_damage: 12
    ammo_type: 10mm
    magazine_capacity: 12
    firing_modes: [single]
  - id: combat_knife
    name: Combat Knife
    skill: melee
    range: 1.5
    base_damage: 8
`), 0644))

	weapons, err := LoadWeapons(path)
	require.NoError(t, err)
	require.Len(t, weapons, 2)
	assert.Equal(t, "10mm_pistol", weapons[0].ID)
	assert.True(t, weapons[1].IsMelee())
}

func TestLoadWeapons_InvalidDefinition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weapons.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
weapons:
  - id: broken
    name: Broken
`), 0644))

	_, err := LoadWeapons(path)
	assert.Error(t, err)
}

func TestLoadWeapons_MissingFile(t *testing.T) {
	_, err := LoadWeapons("/nonexistent/weapons.yaml")
	assert.Error(t, err)
}
