package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/destiny/pkg/catalog"
)

const jsonDataset = `[
  {"Shape": "Round", "Carat": 1, "Color": "D", "Clarity": "VVS2", "Cut": "EX", "Pol": "EX", "Sym": "VG", "Fluro": "NONE", "Ratio": 1.01, "Video Link": "https://v.example/1", "Image Link": "https://i.example/1.jpg"},
  {"Shape": "Oval", "Carat": 0.5, "Color": "F", "Clarity": "SI1", "Cut": null}
]`

func TestFormatFromName(t *testing.T) {
	tests := map[string]Format{
		"diamonds.json":  FormatJSON,
		"/srv/DATA.JSON": FormatJSON,
		"stock.ndjson":   FormatNDJSON,
		"stock.jsonl":    FormatNDJSON,
		"stock.yaml":     FormatYAML,
		"stock.yml":      FormatYAML,
		"stock.toml":     FormatTOML,
		"/api/diamonds":  FormatAuto,
		"":               FormatAuto,
		"archive.tar.gz": FormatAuto,
	}
	for name, want := range tests {
		assert.Equal(t, want, FormatFromName(name), name)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{"json array", jsonDataset, FormatJSON},
		{"compact json", `[{"Shape":"Round"}]`, FormatJSON},
		{"json object", `{"Shape":"Round"}`, FormatJSON},
		{"ndjson", "{\"Shape\":\"Round\"}\n{\"Shape\":\"Oval\"}\n", FormatNDJSON},
		{"yaml list", "- Shape: Round\n  Carat: 1\n", FormatYAML},
		{"yaml multi doc", "---\nShape: Round\n---\nShape: Oval\n", FormatYAML},
		{"toml", "[[diamonds]]\nShape = \"Round\"\nCarat = 1.0\n", FormatTOML},
		{"blank", "   ", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat([]byte(tt.input)))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	records, err := Decode([]byte(jsonDataset), FormatAuto)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Round", first.Shape)
	assert.Equal(t, 1.0, first.Carat)
	require.NotNil(t, first.Fluorescence)
	assert.Equal(t, "NONE", *first.Fluorescence)
	require.NotNil(t, first.Ratio)
	assert.Equal(t, 1.01, *first.Ratio)
	video, ok := first.Video()
	assert.True(t, ok)
	assert.Equal(t, "https://v.example/1", video)

	second := records[1]
	assert.Nil(t, second.Cut)
	assert.Nil(t, second.Ratio)
	assert.Nil(t, second.VideoLink)
}

func TestDecodeJSONSingleObject(t *testing.T) {
	records, err := Decode([]byte(`{"Shape": "Pear", "Carat": 2.2, "Color": "G", "Clarity": "VS2"}`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Pear", records[0].Shape)
}

func TestDecodeEmptyArray(t *testing.T) {
	records, err := Decode([]byte(`[]`), FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestDecodeNDJSON(t *testing.T) {
	input := "{\"Shape\":\"Round\",\"Carat\":1}\n\n{\"Shape\":\"Oval\",\"Carat\":0.5}\n"
	records, err := Decode([]byte(input), FormatNDJSON)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Oval", records[1].Shape)

	_, err = Decode([]byte("{\"Shape\":\"Round\"}\n{oops}\n"), FormatNDJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestDecodeYAML(t *testing.T) {
	list := `
- Shape: Round
  Carat: 1
  Color: D
  Clarity: VVS2
  Video Link: https://v.example/1
- Shape: Oval
  Carat: 0.5
  Color: F
  Clarity: SI1
  Cut: null
`
	records, err := Decode([]byte(list), FormatYAML)
	require.NoError(t, err)
	require.Len(t, records, 2)
	video, ok := records[0].Video()
	assert.True(t, ok)
	assert.Equal(t, "https://v.example/1", video)
	assert.Nil(t, records[1].Cut)

	multi := "---\nShape: Round\nCarat: 1\n---\nShape: Oval\nCarat: 0.5\n"
	records, err = Decode([]byte(multi), FormatAuto)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Round", "Oval"}, []string{records[0].Shape, records[1].Shape})

	_, err = Decode([]byte("just a string\n"), FormatYAML)
	require.Error(t, err)
}

func TestDecodeTOML(t *testing.T) {
	input := `
[[diamonds]]
Shape = "Round"
Carat = 1.0
Color = "D"
Clarity = "VVS2"
Fluro = "FNT"

[[diamonds]]
Shape = "Oval"
Carat = 0.5
Color = "F"
Clarity = "SI1"
`
	records, err := Decode([]byte(input), FormatAuto)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].Fluorescence)
	assert.Equal(t, "FNT", *records[0].Fluorescence)
	assert.Nil(t, records[1].Fluorescence)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("  \n"), FormatAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty dataset")

	_, err = Decode([]byte(`[{"Shape": "Round",`), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")

	_, err = Decode([]byte(`[1, 2]`), FormatJSON)
	require.Error(t, err)

	_, err = Decode([]byte(`x`), Format("csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestDecodeKeepsOrder(t *testing.T) {
	records, err := Decode([]byte(jsonDataset), FormatJSON)
	require.NoError(t, err)
	shapes := make([]string, 0, len(records))
	for _, r := range records {
		shapes = append(shapes, r.Shape)
	}
	assert.Equal(t, []string{"Round", "Oval"}, shapes)
	assert.IsType(t, []catalog.Record{}, records)
}
