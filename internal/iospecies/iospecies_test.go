package iospecies_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnoccur/internal/iospecies"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "species.csv")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoad(t *testing.T) {
	path := writeCSV(t,
		"id,scientificName,notes\n"+
			"1,Panthera onca,rare\n"+
			"2, Puma concolor ,\n"+
			"3,Tapirus terrestris\n",
	)

	list, err := iospecies.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "scientificName", "notes"}, list.Header)
	require.Len(t, list.Rows, 3)

	qs := list.Queries("")
	require.Len(t, qs, 3)
	assert.Equal(t, "Panthera onca", qs[0].ScientificName)
	assert.Equal(t, "Puma concolor", qs[1].ScientificName,
		"names are trimmed")
	assert.Equal(t, "Tapirus terrestris", qs[2].ScientificName)

	// Short rows are padded to header width for the exports.
	assert.Len(t, list.Rows[2], 3)
}

func TestLoadMissingColumn(t *testing.T) {
	tests := []struct {
		msg     string
		content string
	}{
		{msg: "no name column", content: "id,name\n1,Panthera onca\n"},
		{msg: "empty file", content: ""},
		{msg: "case sensitive", content: "scientificname\nPanthera onca\n"},
	}

	for _, v := range tests {
		path := writeCSV(t, v.content)
		_, err := iospecies.Load(path)
		assert.Error(t, err, v.msg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := iospecies.Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestQueries(t *testing.T) {
	path := writeCSV(t,
		"scientificName\nPanthera onca\nPuma concolor\n",
	)
	list, err := iospecies.Load(path)
	require.NoError(t, err)

	t.Run("preserves order", func(t *testing.T) {
		qs := list.Queries("")
		require.Len(t, qs, 2)
		assert.Equal(t, "Panthera onca", qs[0].ScientificName)
		assert.Equal(t, "Puma concolor", qs[1].ScientificName)
		assert.Empty(t, qs[0].Class)
	})

	t.Run("applies class filter to all", func(t *testing.T) {
		qs := list.Queries("Mammalia")
		for _, q := range qs {
			assert.Equal(t, "Mammalia", q.Class)
		}
	})

	t.Run("count equals row count", func(t *testing.T) {
		assert.Equal(t, len(list.Rows), len(list.Queries("")))
	})
}
