package widget

import "fmt"

// Kind is a type of the rendered element.
type Kind string

const (
	// KindButton is an actionable control.
	KindButton Kind = "button"
	// KindLabel is a static text.
	KindLabel Kind = "label"
)

// Color of the rendered label.
type Color string

const (
	ColorNone  Color = ""
	ColorGray  Color = "gray"
	ColorGreen Color = "green"
	ColorRed   Color = "red"
)

// ActionPing is a name of the action bound to the Idle button.
const ActionPing = "ping"

// Texts of the rendered elements.
const (
	TextIdle    = "Ping EOS"
	TextLoading = "Pinging EOS..."
	TextSuccess = "Ping successful!"
	TextFailure = "Ping unsuccessful"
)

// View describes what to show for some Status.
type View struct {
	Status Status `json:"status"`
	Kind   Kind   `json:"kind"`
	Text   string `json:"text"`
	Color  Color  `json:"color,omitempty"`
	// Action is set for KindButton only.
	Action string `json:"action,omitempty"`
}

// Render maps Status to its View. Render is pure: the same status always
// results in the same View.
//
// Panics if s is not one of the four declared statuses.
func Render(s Status) View {
	switch s {
	case Idle:
		return View{Status: s, Kind: KindButton, Text: TextIdle, Action: ActionPing}
	case Loading:
		return View{Status: s, Kind: KindLabel, Text: TextLoading, Color: ColorGray}
	case Success:
		return View{Status: s, Kind: KindLabel, Text: TextSuccess, Color: ColorGreen}
	case Failure:
		return View{Status: s, Kind: KindLabel, Text: TextFailure, Color: ColorRed}
	}

	panic(fmt.Sprintf("unsupported status value %v", s))
}
