package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/models/org/demo":
			w.Write([]byte(`{
				"id": "org/demo",
				"downloads": 1000,
				"likes": 50,
				"lastModified": "2025-01-01T00:00:00.000Z",
				"license": "mit",
				"cardData": {"license": "mit", "datasets": ["squad"]},
				"tags": ["pytorch", "en", "dataset:bookcorpus"],
				"siblings": [
					{"rfilename": "model.safetensors", "size": 500000000},
					{"rfilename": "config.json"}
				]
			}`))
		case "/api/datasets/org/squad":
			w.Write([]byte(`{
				"id": "org/squad",
				"downloads": 20000,
				"license": "cc-by-4.0",
				"description": "A reading comprehension dataset.",
				"cardData": {"dataset_info": {"features": "ok"}},
				"tags": ["question-answering"]
			}`))
		case "/org/demo/raw/main/README.md":
			w.Write([]byte("# Demo\nA model."))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestGetModel(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c := New(srv.URL, 0)
	m, err := c.GetModel(context.Background(), "org/demo")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), m.Downloads)
	assert.Equal(t, int64(50), m.Likes)
	assert.Equal(t, "mit", m.License)
	assert.Len(t, m.Siblings, 2)
	assert.Equal(t, int64(500000000), m.Siblings[0].Size)
	assert.Zero(t, m.Siblings[1].Size)

	_, err = c.GetModel(context.Background(), "org/missing")
	assert.Error(t, err)

	_, err = c.GetModel(context.Background(), "")
	assert.Error(t, err)
}

func TestGetDataset(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c := New(srv.URL, 0)
	d, err := c.GetDataset(context.Background(), "org/squad")
	require.NoError(t, err)
	assert.Equal(t, int64(20000), d.Downloads)
	assert.Equal(t, "cc-by-4.0", d.License)
	assert.NotEmpty(t, d.Description)
}

func TestGetReadme(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	c := New(srv.URL, 0)
	assert.Contains(t, c.GetReadme(context.Background(), "org/demo"), "# Demo")
	assert.Empty(t, c.GetReadme(context.Background(), "org/none"))
}

func TestExtractLicense(t *testing.T) {
	tests := []struct {
		name       string
		model      Model
		want       string
		structured bool
	}{
		{"top level", Model{License: "mit"}, "mit", false},
		{"top level unknown falls through", Model{License: "unknown", CardData: map[string]any{"license": "apache-2.0"}}, "apache-2.0", false},
		{"card string", Model{CardData: map[string]any{"license": "bsd-3-clause"}}, "bsd-3-clause", false},
		{"card list first wins", Model{License: "unknown", CardData: map[string]any{"license": []any{"Apache-2.0", "MIT"}}}, "Apache-2.0", true},
		{"nothing usable", Model{}, LicenseUnknown, false},
		{"empty card list", Model{CardData: map[string]any{"license": []any{}}}, LicenseUnknown, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lic, structured := tc.model.ExtractLicense()
			assert.Equal(t, tc.want, lic)
			assert.Equal(t, tc.structured, structured)
		})
	}
}

func TestExtractLicenseIdempotent(t *testing.T) {
	m := Model{License: "unknown", CardData: map[string]any{"license": []any{"Apache-2.0", "MIT"}}}
	first, _ := m.ExtractLicense()
	second, _ := m.ExtractLicense()
	assert.Equal(t, first, second)
	assert.Equal(t, "Apache-2.0", first)
}

func TestCardDatasets(t *testing.T) {
	m := Model{
		CardData: map[string]any{"datasets": []any{"squad", "glue"}},
		Tags:     []string{"pytorch", "dataset:bookcorpus"},
	}
	assert.Equal(t, []string{"squad", "glue", "bookcorpus"}, m.CardDatasets())

	m = Model{CardData: map[string]any{"datasets": "c4"}}
	assert.Equal(t, []string{"c4"}, m.CardDatasets())

	m = Model{}
	assert.Empty(t, m.CardDatasets())
}
