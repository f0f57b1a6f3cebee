package hwmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twisterMap = `- connected: true
  id: '000683123456'
  platform: unknown
  product: J-Link
  runner: jlink
  serial: /dev/serial/by-id/usb-SEGGER_J-Link_000683123456-if00
- connected: false
  id: 001050012345
  platform: nrf52840dk_nrf52840
  product: J-Link
  runner: nrfjprog
  serial: null
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(twisterMap))
	require.NoError(t, err)
	require.Len(t, m, 2)

	first := m[0]
	assert.Equal(t, "000683123456", first.ID)
	assert.Equal(t, UnknownPlatform, first.Platform)
	assert.Equal(t, "683123456", first.SerialNumber())
	assert.Equal(t, "/dev/serial/by-id/usb-SEGGER_J-Link_000683123456-if00", first.SerialPath())
	assert.Equal(t, "J-Link", first.Extra["product"])
	assert.False(t, first.Resolved())

	second := m[1]
	assert.Equal(t, "001050012345", second.ID, "unquoted ids keep their text")
	assert.Equal(t, "1050012345", second.SerialNumber())
	assert.Nil(t, second.Serial)
	assert.Equal(t, "", second.SerialPath())
	assert.True(t, second.Resolved())
}

func TestParseEmpty(t *testing.T) {
	for _, doc := range []string{"", "[]\n", "null\n"} {
		m, err := Parse([]byte(doc))
		require.NoError(t, err, "doc %q", doc)
		assert.NotNil(t, m)
		assert.Empty(t, m)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("id: not-a-list\n"))
	require.Error(t, err)
}

func TestSaveLoadKeepsExtraKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hardware-map.yaml")
	m, err := Parse([]byte(twisterMap))
	require.NoError(t, err)

	m[0].Platform = "nrf5340dk_nrf5340_cpuapp"
	require.NoError(t, Save(path, m))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "nrf5340dk_nrf5340_cpuapp", got[0].Platform)
	assert.Equal(t, m[0].ID, got[0].ID)
	assert.Equal(t, m[0].SerialPath(), got[0].SerialPath())
	assert.Equal(t, "J-Link", got[0].Extra["product"])
	assert.Nil(t, got[1].Serial)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "  serial: null\n")
}

func TestMarshalKeepsNullSerial(t *testing.T) {
	m, err := Parse([]byte(`- id: '000683000001'
  platform: unknown
  serial: null
  runner: jlink
  connected: false
`))
	require.NoError(t, err)
	m[0].Platform = "nrf52833dk_nrf52833"

	data, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `- connected: false
  id: "000683000001"
  platform: nrf52833dk_nrf52833
  runner: jlink
  serial: null
`, string(data))
}

func TestMarshalLeavesAbsentKeysOut(t *testing.T) {
	m, err := Parse([]byte("- id: '000683000001'\n  product: J-Link\n"))
	require.NoError(t, err)

	data, err := Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "- id: \"000683000001\"\n  product: J-Link\n", string(data))

	m[0].Runner = "nrfjprog"
	m[0].Connected = true
	data, err = Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "- connected: true\n  id: \"000683000001\"\n  product: J-Link\n  runner: nrfjprog\n", string(data))
}

func TestMarshalBuiltEntry(t *testing.T) {
	data, err := Marshal(Map{{ID: "683000001"}})
	require.NoError(t, err)
	assert.Equal(t, "- connected: false\n  id: \"683000001\"\n  platform: \"\"\n", string(data))
}

func TestSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithout(t *testing.T) {
	m := Map{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	got := m.Without(func(e Entry) bool { return e.ID == "2" })
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Len(t, m, 3)
}
