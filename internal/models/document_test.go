package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesFromRawTitledTables(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{
			"Table Title": "Action Items",
			"Content": []interface{}{
				map[string]interface{}{"Item": "Resolve query", "Owner": "CRA"},
				map[string]interface{}{"Item": "Sign log", "Owner": "PI"},
			},
		},
	}

	tables := TablesFromRaw(raw)

	require.Len(t, tables, 1)
	assert.Equal(t, "Action Items", tables[0].Title)
	require.Len(t, tables[0].Rows, 2)
	assert.Equal(t, "Resolve query", tables[0].Rows[0]["Item"])
}

func TestTablesFromRawBareRows(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"Subject": "03409-001", "Status": "Enrolled"},
		map[string]interface{}{"Subject": "03409-002", "Status": "Screened"},
	}

	tables := TablesFromRaw(raw)

	require.Len(t, tables, 1)
	assert.Empty(t, tables[0].Title)
	assert.Len(t, tables[0].Rows, 2)
}

func TestTablesFromRawRowArrays(t *testing.T) {
	raw := []interface{}{
		[]interface{}{
			map[string]interface{}{"A": "1"},
		},
		[]interface{}{
			map[string]interface{}{"B": "2"},
		},
	}

	tables := TablesFromRaw(raw)

	require.Len(t, tables, 2)
	assert.Equal(t, "1", tables[0].Rows[0]["A"])
	assert.Equal(t, "2", tables[1].Rows[0]["B"])
}

func TestTablesFromRawIgnoresJunk(t *testing.T) {
	raw := []interface{}{"not a table", float64(7), nil}

	assert.Empty(t, TablesFromRaw(raw))
}

func TestIsSearchableField(t *testing.T) {
	assert.True(t, IsSearchableField("Sponsor"))
	assert.True(t, IsSearchableField("Date of Letter"))
	assert.False(t, IsSearchableField("Number of Days"))
	assert.False(t, IsSearchableField("sponsor"))
}
