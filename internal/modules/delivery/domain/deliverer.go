package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const (
	// CapabilityDeliver marks a plugin that can receive an export artifact.
	CapabilityDeliver Capability = "deliver"
)

var (
	ErrDelivererDisabled  = errors.New("deliverer is disabled")
	ErrChecksumMismatch   = errors.New("deliverer checksum mismatch")
	ErrCapabilityMissing  = errors.New("deliverer capability missing")
	ErrDelivererNotFound  = errors.New("deliverer not found")
	ErrDelivererTimeout   = errors.New("deliverer timeout")
	ErrDeliveryIncomplete = errors.New("deliverer did not complete delivery")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one external deliverer binary. Manifests are the only
// way a plugin enters the process: unlisted binaries are never launched.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("deliverer name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("deliverer version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("deliverer binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("deliverer sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("deliverer capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityDeliver:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// Request carries the artifact handed to a deliverer plugin.
type Request struct {
	Filename string
	MIME     string
	Content  []byte
}

func (r Request) Validate() error {
	if r.Filename == "" {
		return fmt.Errorf("artifact filename is required")
	}
	if r.MIME == "" {
		return fmt.Errorf("artifact mime type is required")
	}
	return nil
}

// Result is the plugin's account of where the artifact went.
type Result struct {
	Delivered bool
	Target    string
	Message   string
}

func (r Result) Validate() error {
	if r.Delivered && r.Target == "" {
		return fmt.Errorf("delivered result must name a target")
	}
	return nil
}
