package widget_test

import (
	"encoding/json"
	"testing"

	"github.com/nspcc-dev/eos-pingdemo/pkg/widget"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	for _, tc := range []struct {
		status widget.Status
		view   widget.View
	}{
		{widget.Idle, widget.View{Status: widget.Idle, Kind: widget.KindButton, Text: "Ping EOS", Action: "ping"}},
		{widget.Loading, widget.View{Status: widget.Loading, Kind: widget.KindLabel, Text: "Pinging EOS...", Color: "gray"}},
		{widget.Success, widget.View{Status: widget.Success, Kind: widget.KindLabel, Text: "Ping successful!", Color: "green"}},
		{widget.Failure, widget.View{Status: widget.Failure, Kind: widget.KindLabel, Text: "Ping unsuccessful", Color: "red"}},
	} {
		t.Run(tc.status.String(), func(t *testing.T) {
			require.Equal(t, tc.view, widget.Render(tc.status))
			// same input, same output
			require.Equal(t, widget.Render(tc.status), widget.Render(tc.status))
		})
	}

	require.Panics(t, func() { widget.Render(widget.Status(4)) })
}

func TestStatus_Text(t *testing.T) {
	for s, name := range map[widget.Status]string{
		widget.Idle:    "idle",
		widget.Loading: "loading",
		widget.Success: "success",
		widget.Failure: "failure",
	} {
		txt, err := s.MarshalText()
		require.NoError(t, err)
		require.Equal(t, name, string(txt))
		require.Equal(t, name, s.String())
	}

	_, err := widget.Status(10).MarshalText()
	require.Error(t, err)
	require.Equal(t, "Status(10)", widget.Status(10).String())
}

func TestView_JSON(t *testing.T) {
	data, err := json.Marshal(widget.Render(widget.Failure))
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"failure","kind":"label","text":"Ping unsuccessful","color":"red"}`, string(data))

	data, err = json.Marshal(widget.Render(widget.Idle))
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"idle","kind":"button","text":"Ping EOS","action":"ping"}`, string(data))
}
