package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/thanhnp/psbt-apis/internal/api/handlers"
	"github.com/thanhnp/psbt-apis/internal/models"
)

var invokeCommand = cli.Command{
	Name:  "invoke",
	Usage: "Handle one {\"psbt\",\"network\"} event from stdin and write {\"status_code\",\"body\"} to stdout",
	Action: func(ctx *cli.Context) error {
		h := handlers.NewPsbtHandler(nil, getConfig(ctx).Network())
		return printJSON(ctx.App.Writer, invoke(h, ctx.App.Reader))
	},
}

// invoke never fails; errors are reported through the status code
func invoke(h *handlers.PsbtHandler, r io.Reader) models.InvokeResponse {
	var req models.ParseRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return models.InvokeResponse{
			StatusCode: http.StatusBadRequest,
			Body: models.ErrorResponse{
				Error: "invalid event: " + err.Error(),
				Kind:  "request",
			},
		}
	}

	status, body := h.Invoke(&req)
	return models.InvokeResponse{StatusCode: status, Body: body}
}

func printJSON(w io.Writer, resp interface{}) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return err
	}

	_, err = w.Write(append(jsonBytes, '\n'))
	return err
}
