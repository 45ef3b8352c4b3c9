package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ridelog/internal/modules/delivery/domain"
	"ridelog/internal/modules/delivery/dto"
	deliveryout "ridelog/internal/modules/delivery/port/out"
)

// DeliveryService gates every plugin launch behind the manifest: the binary
// must exist, hash to the pinned checksum, and be enabled before the host
// ever executes it.
type DeliveryService struct {
	store deliveryout.ManifestStore
	host  deliveryout.Host
}

func NewDeliveryService(store deliveryout.ManifestStore, host deliveryout.Host) *DeliveryService {
	return &DeliveryService{store: store, host: host}
}

func (s *DeliveryService) List(ctx context.Context) ([]dto.DelivererInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DelivererInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.DelivererInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *DeliveryService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *DeliveryService) Deliver(ctx context.Context, input dto.DeliverInput) (dto.DeliverOutput, error) {
	manifest, err := s.getRunnableManifest(ctx, input.Deliverer)
	if err != nil {
		return dto.DeliverOutput{}, err
	}
	request := domain.Request{Filename: input.Filename, MIME: input.MIME, Content: input.Content}
	if err := request.Validate(); err != nil {
		return dto.DeliverOutput{}, err
	}
	result, err := s.host.Deliver(ctx, manifest, request)
	if err != nil {
		return dto.DeliverOutput{}, err
	}
	if err := result.Validate(); err != nil {
		return dto.DeliverOutput{}, err
	}
	if !result.Delivered {
		return dto.DeliverOutput{}, fmt.Errorf("%w: %s", domain.ErrDeliveryIncomplete, messageOr(result.Message, "no reason given"))
	}
	return dto.DeliverOutput{Deliverer: input.Deliverer, Target: result.Target, Message: result.Message}, nil
}

func (s *DeliveryService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate deliverer name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *DeliveryService) getRunnableManifest(ctx context.Context, name string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == name {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrDelivererNotFound, name)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrDelivererDisabled, name)
	}
	if !manifest.HasCapability(domain.CapabilityDeliver) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, domain.CapabilityDeliver)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrDelivererTimeout, name)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read deliverer binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
