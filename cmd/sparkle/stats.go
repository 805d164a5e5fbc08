package main

import "github.com/urfave/cli/v2"

var stats = cli.Command{
	Name:   "stats",
	Usage:  "view the coordinator's trade counters",
	Action: statsAction,
}

func statsAction(ctx *cli.Context) error {
	resp, err := getRequest(ctx, "/v1/stats")
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
