package internal

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// TagWriter writes metadata into an already written JPEG
type TagWriter interface {
	WriteTags(path string, m Metadata) error
}

// Generator renders photo jobs into geotagged JPEG files
type Generator struct {
	OutputDir  string
	SecondsDen uint32
	Quality    int
	Typeface   *Typeface
	TagWriter  TagWriter // nil embeds EXIF natively
	Log        *Logger
}

// GeneratedPhoto is a written fixture
type GeneratedPhoto struct {
	Job  PhotoJob
	Path string
	Size int64
	Hash string
}

// Render draws the background and labels of a job
func (g *Generator) Render(job PhotoJob) (image.Image, error) {
	if job.Width <= 0 || job.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d for %s", job.Width, job.Height, job.Filename)
	}
	img := RenderGradient(job.Width, job.Height, job.Background)
	if len(job.Labels) == 0 {
		return img, nil
	}
	return DrawLabels(img, job.Labels, g.Typeface)
}

// Encode renders the job and returns the JPEG bytes with EXIF embedded
func (g *Generator) Encode(job PhotoJob) ([]byte, error) {
	img, err := g.Render(job)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(g.quality())); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", job.Filename, err)
	}
	if g.TagWriter != nil {
		return buf.Bytes(), nil
	}

	data, err := EmbedExif(buf.Bytes(), job.Metadata(g.SecondsDen))
	if err != nil {
		return nil, fmt.Errorf("failed to embed exif metadata in %s: %w", job.Filename, err)
	}
	return data, nil
}

// Generate writes one job to OutputDir
func (g *Generator) Generate(ctx context.Context, job PhotoJob) (*GeneratedPhoto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := g.Encode(job)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", g.OutputDir, err)
	}
	path := filepath.Join(g.OutputDir, job.Filename)
	if err := writeFileAtomic(path, data); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if g.TagWriter != nil {
		if err := g.TagWriter.WriteTags(path, job.Metadata(g.SecondsDen)); err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	hash, err := fileHash(path)
	if err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", path, err)
	}

	if g.Log != nil {
		g.Log.Info("photo generated",
			"file", path,
			"location", job.Location.Name,
			"lat", job.Location.Latitude,
			"lon", job.Location.Longitude,
			"taken", job.Taken.Format(ExifDateLayout),
			"size", info.Size())
	}

	return &GeneratedPhoto{Job: job, Path: path, Size: info.Size(), Hash: hash}, nil
}

func (g *Generator) quality() int {
	if g.Quality <= 0 || g.Quality > 100 {
		return 95
	}
	return g.Quality
}
