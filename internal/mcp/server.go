package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"wdikit/internal/store"
)

type Server struct {
	db        store.Store
	outputDir string
	mcp       *sdk.Server
}

func NewServer(db store.Store, outputDir string) *Server {
	s := &Server{
		db:        db,
		outputDir: outputDir,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "wdikit",
			Version: "1.0.0",
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
