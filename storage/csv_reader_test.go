package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pipeline/utils"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotels.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVReader_ReadRawHotels(t *testing.T) {
	path := writeFixture(t, `name,price,location,score,review_count,review_category,free_cancellation,rooms_left,distance,description,url,scraped_at
Sample Inn,€150,Dublin 2,8.5,120,Very Good,Free cancellation,3 rooms left,1.2 km from centre,Cosy rooms,https://example.com/sample-inn,2024-03-15T10:00:00Z
Harbour Hotel,€99,Galway,7.1,45,,,,,,,
`)

	reader := NewCSVReader(path, utils.NewLogger())
	hotels, err := reader.ReadRawHotels()
	require.NoError(t, err)
	require.Len(t, hotels, 2)

	assert.Equal(t, "Sample Inn", hotels[0].Name)
	assert.Equal(t, "€150", hotels[0].RawPrice)
	assert.Equal(t, "Dublin 2", hotels[0].Location)
	assert.Equal(t, "8.5", hotels[0].RawScore)
	assert.Equal(t, "120", hotels[0].RawReviewCount)
	assert.Equal(t, "Very Good", hotels[0].ReviewCategory)
	assert.Equal(t, "Free cancellation", hotels[0].RawCancellation)
	assert.Equal(t, "3 rooms left", hotels[0].RawRoomsLeft)
	assert.Equal(t, "https://example.com/sample-inn", hotels[0].URL)
	assert.Equal(t, 2024, hotels[0].ScrapedAt.Year())

	assert.Equal(t, "Harbour Hotel", hotels[1].Name)
	assert.Empty(t, hotels[1].ReviewCategory)
	assert.True(t, hotels[1].ScrapedAt.IsZero())
}

func TestCSVReader_ColumnOrderIndependent(t *testing.T) {
	path := writeFixture(t, `location,review_count,score,name,price
Dublin,120,8.5,Sample Inn,€150
`)

	reader := NewCSVReader(path, utils.NewLogger())
	hotels, err := reader.ReadRawHotels()
	require.NoError(t, err)
	require.Len(t, hotels, 1)

	assert.Equal(t, "Sample Inn", hotels[0].Name)
	assert.Equal(t, "€150", hotels[0].RawPrice)
	assert.Equal(t, "Dublin", hotels[0].Location)
}

func TestCSVReader_SchemaMismatchIsFatal(t *testing.T) {
	path := writeFixture(t, `name,location,score
Sample Inn,Dublin,8.5
`)

	reader := NewCSVReader(path, utils.NewLogger())
	hotels, err := reader.ReadRawHotels()

	require.Error(t, err)
	assert.Nil(t, hotels)

	schemaErr, ok := err.(*SchemaError)
	require.True(t, ok, "expected *SchemaError, got %T", err)
	assert.Equal(t, []string{"price", "review_count"}, schemaErr.Missing)
	assert.Contains(t, schemaErr.Error(), "price")
}

func TestCSVReader_MissingFile(t *testing.T) {
	reader := NewCSVReader(filepath.Join(t.TempDir(), "nope.csv"), utils.NewLogger())
	_, err := reader.ReadRawHotels()
	assert.Error(t, err)
}

func TestCSVReader_ShortRowsPadded(t *testing.T) {
	path := writeFixture(t, `name,price,location,score,review_count,url
Sample Inn,€150,Dublin
`)

	reader := NewCSVReader(path, utils.NewLogger())
	hotels, err := reader.ReadRawHotels()
	require.NoError(t, err)
	require.Len(t, hotels, 1)

	assert.Equal(t, "Sample Inn", hotels[0].Name)
	assert.Empty(t, hotels[0].RawScore)
	assert.Empty(t, hotels[0].URL)
}
