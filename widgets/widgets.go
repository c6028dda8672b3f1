// Package widgets registers the builtin widgets.
package widgets

import (
	_ "github.com/denysvitali/yagobar/widgets/battery"
	_ "github.com/denysvitali/yagobar/widgets/blank"
	_ "github.com/denysvitali/yagobar/widgets/brightness"
	_ "github.com/denysvitali/yagobar/widgets/clock"
	_ "github.com/denysvitali/yagobar/widgets/cpu"
	_ "github.com/denysvitali/yagobar/widgets/disk"
	_ "github.com/denysvitali/yagobar/widgets/exec"
	_ "github.com/denysvitali/yagobar/widgets/http"
	_ "github.com/denysvitali/yagobar/widgets/mobilebroadband"
	_ "github.com/denysvitali/yagobar/widgets/music"
	_ "github.com/denysvitali/yagobar/widgets/static"
	_ "github.com/denysvitali/yagobar/widgets/weather"
	_ "github.com/denysvitali/yagobar/widgets/wifi"
	_ "github.com/denysvitali/yagobar/widgets/workspace"
	_ "github.com/denysvitali/yagobar/widgets/wrapper"
)
