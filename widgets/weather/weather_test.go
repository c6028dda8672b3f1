package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/denysvitali/yagobar/ygb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Zurich", r.URL.Query().Get("q"))
		assert.Equal(t, "key", r.URL.Query().Get("APPID"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		_, _ = rw.Write([]byte(`{
			"weather": [{"id": 501, "main": "Rain", "description": "moderate rain"}],
			"main": {"temp": 11.6, "humidity": 80},
			"wind": {"speed": 3.14},
			"name": "Zurich"
		}`))
	}))
	defer srv.Close()

	w, err := NewWidget(WidgetParams{
		Interval: 1,
		Location: "Zurich",
		APIKey:   "key",
		Units:    "metric",
		Format:   "%ln: %we %wd %mt° %mh% %es",
		URL:      srv.URL,
	}, ygb.NopLogger{})
	require.NoError(t, err)

	v, err := w.(*Widget).fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ygb.Text("Zurich: 🌧️ moderate rain 12° 80% 3.1"), v)
}

func TestFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	w, err := NewWidget(WidgetParams{Interval: 1, APIKey: "bad", URL: srv.URL}, ygb.NopLogger{})
	require.NoError(t, err)

	_, err = w.(*Widget).fetch(context.Background())
	require.EqualError(t, err, "weather: 401 Unauthorized")
}

func TestWeatherEmoji(t *testing.T) {
	assert.Equal(t, "🌞", weatherEmoji(800))
	assert.Equal(t, "☁️", weatherEmoji(803))
	assert.Equal(t, "❄️", weatherEmoji(601))
	assert.Equal(t, "❓", weatherEmoji(0))
}

func TestMissingKey(t *testing.T) {
	_, err := NewWidget(WidgetParams{Interval: 1}, ygb.NopLogger{})
	require.EqualError(t, err, "missing 'api_key'")
}
