package cli

import (
	"context"
	"strings"

	"github.com/binbandit/keychainctl/internal/app"
)

// parseFastGet recognises the common read shapes
//
//	get <service>
//	get <service> -a <account>
//	get <service> --account <account>
//
// so they can skip building the command tree. Anything else, including a
// service that looks like a flag, goes through normal parsing.
func parseFastGet(args []string) (app.GetRequest, bool) {
	if len(args) < 2 || args[0] != "get" || strings.HasPrefix(args[1], "-") {
		return app.GetRequest{}, false
	}
	req := app.GetRequest{Service: args[1]}

	switch len(args) {
	case 2:
		return req, true
	case 4:
		if args[2] != "-a" && args[2] != "--account" {
			return app.GetRequest{}, false
		}
		req.Account = args[3]
		return req, true
	default:
		return app.GetRequest{}, false
	}
}

func runFastGet(req app.GetRequest) error {
	jsonOutput = false
	configPath = ""
	verbose = false
	if err := loadRuntime(); err != nil {
		return err
	}
	return runGet(context.Background(), req)
}
