package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"
)

var urlFlag = cli.StringFlag{
	Name:  "url",
	Usage: "address of the sparkled coordinator",
	Value: "http://localhost:4000",
}

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "sparkle operator CLI"
	app.Usage = "Command line interface for sparkled coordinator operators"
	app.Flags = []cli.Flag{&urlFlag}
	app.Commands = append(
		app.Commands,
		&createtrade,
		&submitseller,
		&submitbuyer,
		&settletrade,
		&gettrade,
		&listtrades,
		&stats,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[sparkle] %v\n", err)
	os.Exit(1)
}

func getRequest(ctx *cli.Context, path string) (json.RawMessage, error) {
	resp, err := http.Get(ctx.String("url") + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return readResponse(resp)
}

func postRequest(
	ctx *cli.Context, path string, body interface{},
) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(
		ctx.String("url")+path, "application/json", bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return readResponse(resp)
}

func readResponse(resp *http.Response) (json.RawMessage, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errResp := struct {
			Error string `json:"error"`
		}{}
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("coordinator: %s", errResp.Error)
		}
		return nil, fmt.Errorf("coordinator: unexpected status %d", resp.StatusCode)
	}

	return data, nil
}

func printRespJSON(resp json.RawMessage) {
	var out bytes.Buffer
	if err := json.Indent(&out, resp, "", "  "); err != nil {
		fmt.Println(string(resp))
		return
	}
	fmt.Println(out.String())
}
