package regression

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
)

// artifactVersion is bumped whenever the serialized layout changes in
// a way old readers cannot handle.
const artifactVersion = 1

func init() {
	gob.Register(&RandomForest{})
	gob.Register(&GradientBoosting{})
	gob.Register(&HistGradientBoosting{})
}

// ArtifactMetadata describes a fitted model well enough to validate
// inputs at prediction time without refitting.
type ArtifactMetadata struct {
	ID            uuid.UUID `json:"id"`
	Algorithm     string    `json:"algorithm"`
	TargetColumn  string    `json:"target_column"`
	Features      []string  `json:"features"`
	Rows          int       `json:"rows"`
	TrainMAE      float64   `json:"train_mae"`
	TrainRMSE     float64   `json:"train_rmse"`
	TrainedAt     time.Time `json:"trained_at"`
	FormatVersion int       `json:"format_version"`
}

// Artifact pairs a fitted model with its metadata for persistence.
type Artifact struct {
	Metadata ArtifactMetadata
	Model    Regressor
}

// NewArtifact wraps a fitted model with fresh metadata.
func NewArtifact(model Regressor, target string, features []string, rows int, trainMAE, trainRMSE float64) *Artifact {
	return &Artifact{
		Metadata: ArtifactMetadata{
			ID:            uuid.New(),
			Algorithm:     model.Name(),
			TargetColumn:  target,
			Features:      append([]string(nil), features...),
			Rows:          rows,
			TrainMAE:      trainMAE,
			TrainRMSE:     trainRMSE,
			TrainedAt:     time.Now().UTC(),
			FormatVersion: artifactVersion,
		},
		Model: model,
	}
}

// SaveArtifact writes the artifact as snappy-compressed gob. The file
// lands via temp file and rename so readers never observe a partial
// write.
func SaveArtifact(path string, art *Artifact) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(art); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	compressed := snappy.Encode(nil, buf.Bytes())

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename artifact into place: %w", err)
	}
	return nil
}

// LoadArtifact reads an artifact written by SaveArtifact and rejects
// layouts from a different format version.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	decompressed, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, fmt.Errorf("decompress artifact: %w", err)
	}

	var art Artifact
	if err := gob.NewDecoder(bytes.NewReader(decompressed)).Decode(&art); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if art.Metadata.FormatVersion != artifactVersion {
		return nil, fmt.Errorf("unsupported artifact format version %d (want %d)",
			art.Metadata.FormatVersion, artifactVersion)
	}
	if art.Model == nil {
		return nil, fmt.Errorf("artifact %s contains no model", path)
	}
	return &art, nil
}
