// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

/*
Package supervisor runs the long-lived parts of Dinewise under a suture v4
supervisor tree.

The tree has two layers so that a crashing batch job never takes the HTTP
surface down with it:

	RootSupervisor ("dinewise")
	├── BatchSupervisor ("batch-layer")
	│   ├── similarity-batch
	│   └── trend-batch
	└── APISupervisor ("api-layer")
	    └── http-server

Crashed services are restarted with suture's backoff. Supervisor events are
routed to log/slog through sutureslog, so they share the zerolog output via
logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddBatchService(services.NewSimilarityBatchService(engine, cfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	return tree.Serve(ctx)

The service implementations live in the services subpackage.
*/
package supervisor
