// Command filedrop is the reference delivery plugin. It drops the exported
// artifact into a local inbox directory, which stands in for any real
// destination (network share, mail gateway, sync folder).
package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-plugin"

	deliveryrpc "ridelog/internal/modules/delivery/adapter/out/rpc"
)

const defaultInbox = "filedrop-inbox"

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *deliveryrpc.Empty) (*deliveryrpc.Metadata, error) {
	return &deliveryrpc.Metadata{
		Name:         "filedrop",
		Version:      "1.0.0",
		Capabilities: []string{"deliver"},
	}, nil
}

func (s *server) Deliver(_ context.Context, in *deliveryrpc.DeliverRequest) (*deliveryrpc.DeliverResponse, error) {
	if in.Filename == "" {
		return &deliveryrpc.DeliverResponse{Delivered: false, Message: "missing filename"}, nil
	}
	content, err := base64.StdEncoding.DecodeString(in.ContentBase64)
	if err != nil {
		return &deliveryrpc.DeliverResponse{Delivered: false, Message: "content is not valid base64"}, nil
	}

	inbox := os.Getenv("FILEDROP_INBOX")
	if inbox == "" {
		inbox = defaultInbox
	}
	if err := os.MkdirAll(inbox, 0o755); err != nil {
		return &deliveryrpc.DeliverResponse{Delivered: false, Message: fmt.Sprintf("create inbox: %v", err)}, nil
	}
	target := filepath.Join(inbox, filepath.Base(in.Filename))
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return &deliveryrpc.DeliverResponse{Delivered: false, Message: fmt.Sprintf("write artifact: %v", err)}, nil
	}
	return &deliveryrpc.DeliverResponse{
		Delivered: true,
		Target:    target,
		Message:   fmt.Sprintf("dropped %d bytes of %s", len(content), in.MIME),
	}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: deliveryrpc.HandshakeConfig,
		Plugins:         deliveryrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
