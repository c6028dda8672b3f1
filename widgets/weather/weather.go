// Package weather contains the OpenWeatherMap widget.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	// Interval between requests, in minutes.
	Interval uint
	Location string
	APIKey   string `yaml:"api_key"`
	Units    string
	Format   string
	URL      string
}

// Widget shows the current weather.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	client *http.Client
}

// Condition is a weather condition.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

// Result is the subset of the current weather response the widget renders.
type Result struct {
	Weather []Condition `json:"weather"`
	Main    struct {
		Temp      float32 `json:"temp"`
		FeelsLike float32 `json:"feels_like"`
		TempMin   float32 `json:"temp_min"`
		TempMax   float32 `json:"temp_max"`
		Pressure  float32 `json:"pressure"`
		Humidity  float32 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed  float32 `json:"speed"`
		Degree float32 `json:"deg"`
		Gust   float32 `json:"gust"`
	} `json:"wind"`
	Clouds struct {
		All float32 `json:"all"`
	} `json:"clouds"`
	Name string `json:"name"`
}

var _ ygb.Widget = &Widget{}

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "weather",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Interval: 15,
			Location: "London, UK",
			Units:    "metric",
			Format:   "%we %mt°",
			URL:      "https://api.openweathermap.org/data/2.5/weather",
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new weather widget.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params: params.(WidgetParams),
		logger: wlogger,
		client: &http.Client{Timeout: 30 * time.Second},
	}

	if w.params.APIKey == "" {
		return nil, errors.New("missing 'api_key'")
	}

	if w.params.Interval == 0 {
		return nil, fmt.Errorf("invalid interval %d", w.params.Interval)
	}

	return w, nil
}

// Run starts the main loop.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	interval := time.Duration(w.params.Interval) * time.Minute

	return w.Poll(ctx, notify, interval, interval, w.fetch)
}

func (w *Widget) fetch(ctx context.Context) (ygb.Value, error) {
	apiURL, err := url.Parse(w.params.URL)
	if err != nil {
		return nil, err
	}

	query := apiURL.Query()
	query.Set("q", w.params.Location)
	query.Set("APPID", w.params.APIKey)
	query.Set("units", w.params.Units)
	apiURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL.String(), nil)
	if err != nil {
		return nil, err
	}

	res, err := w.client.Do(req)
	if err != nil {
		w.logger.Errorf("weather: %s", err)

		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		w.logger.Errorf("weather: %s", res.Status)

		return nil, fmt.Errorf("weather: %s", res.Status)
	}

	var result Result
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}

	return ygb.Text(formatWeather(result, w.params.Format)), nil
}

func formatWeather(result Result, format string) string {
	var cond Condition
	if len(result.Weather) > 0 {
		cond = result.Weather[0]
	}

	f := func(v float32) string {
		return fmt.Sprintf("%.0f", v)
	}

	return strings.NewReplacer(
		"%wm", cond.Main,
		"%wd", cond.Description,
		"%we", weatherEmoji(cond.ID),
		"%mt", f(result.Main.Temp),
		"%mf", f(result.Main.FeelsLike),
		"%ma", f(result.Main.TempMin),
		"%mb", f(result.Main.TempMax),
		"%mp", f(result.Main.Pressure),
		"%mh", f(result.Main.Humidity),
		"%es", fmt.Sprintf("%.1f", result.Wind.Speed),
		"%ed", f(result.Wind.Degree),
		"%eg", fmt.Sprintf("%.1f", result.Wind.Gust),
		"%c", f(result.Clouds.All),
		"%ln", result.Name,
	).Replace(format)
}

// weatherEmoji maps an OpenWeatherMap condition id.
func weatherEmoji(id int) string {
	switch {
	case id == 800:
		return "🌞"
	case id >= 200 && id < 300:
		return "⛈️"
	case id >= 300 && id < 400:
		return "⛆"
	case id >= 500 && id < 600:
		return "🌧️"
	case id >= 600 && id < 700:
		return "❄️"
	case id > 800 && id < 900:
		return "☁️"
	}

	return "❓"
}
