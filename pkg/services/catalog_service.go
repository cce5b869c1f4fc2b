package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"photofolio-home/pkg/config"
	"photofolio-home/pkg/models"
	"photofolio-home/pkg/slideshow"
)

// ManifestObject is the object under the bucket prefix that describes the slides
const ManifestObject = "manifest.json"

// signedURLLifetime is how long bucket image URLs stay valid
const signedURLLifetime = 24 * time.Hour

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// ManifestEntry holds the display metadata for one bucket image, keyed by file base name
type ManifestEntry struct {
	Alt             string `json:"alt"`
	ProjectName     string `json:"projectName"`
	BackgroundColor string `json:"backgroundColor"`
	URL             string `json:"url,omitempty"`
}

// DefaultSlides returns the slides shown when no catalog source is configured
func DefaultSlides() []models.Slide {
	return []models.Slide{
		{
			ID:              1,
			Image:           "https://photofolio.damienpierre.com/wp-content/uploads/2023/04/25042023-kobe-65.jpg",
			Alt:             "Array of colorful mobile devices on dark background",
			ProjectName:     "Function Plotter Gizmo",
			BackgroundColor: "bg-purple-600",
			URL:             "/projects/function-plotter-gizmo",
		},
		{
			ID:              2,
			Image:           "https://photofolio.damienpierre.com/wp-content/uploads/2023/05/28042023-aso-34.jpg",
			Alt:             "Blue abstract background",
			ProjectName:     "Neural Network Explorer",
			BackgroundColor: "bg-blue-500",
			URL:             "/projects/function-plotter-gizmo",
		},
		{
			ID:              3,
			Image:           "https://photofolio.damienpierre.com/wp-content/uploads/2023/04/26042023-fukuoka-22.jpg",
			Alt:             "Teal abstract background",
			ProjectName:     "Quantum Visualizer",
			BackgroundColor: "bg-teal-500",
		},
	}
}

// LoadCatalog builds the slide catalog from the configured source
func LoadCatalog(ctx context.Context, cfg *config.Config) (*slideshow.Catalog, error) {
	switch {
	case cfg.BucketName != "":
		return loadBucketCatalog(ctx, cfg)
	case cfg.CatalogFile != "":
		return LoadCatalogFile(cfg.CatalogFile)
	default:
		return slideshow.NewCatalog(DefaultSlides())
	}
}

// LoadCatalogFile reads a JSON array of slides
func LoadCatalogFile(filename string) (*slideshow.Catalog, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return decodeCatalog(f)
}

func decodeCatalog(r io.Reader) (*slideshow.Catalog, error) {
	var slides []models.Slide
	if err := json.NewDecoder(r).Decode(&slides); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return slideshow.NewCatalog(slides)
}

func loadBucketCatalog(ctx context.Context, cfg *config.Config) (*slideshow.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	bucket := client.Bucket(cfg.BucketName)
	prefix := cfg.BucketPrefix

	var names []string
	it := bucket.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}
		names = append(names, attrs.Name)
	}

	manifest, err := readManifest(ctx, bucket, prefix+ManifestObject)
	if err != nil {
		return nil, err
	}

	sign := func(name string) (string, error) {
		return bucket.SignedURL(name, &storage.SignedURLOptions{
			Expires: time.Now().Add(signedURLLifetime),
			Method:  "GET",
		})
	}

	slides, err := slidesFromObjects(names, manifest, sign)
	if err != nil {
		return nil, err
	}
	return slideshow.NewCatalog(slides)
}

func readManifest(ctx context.Context, bucket *storage.BucketHandle, name string) (map[string]ManifestEntry, error) {
	reader, err := bucket.Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return map[string]ManifestEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Object(%q).NewReader: %w", name, err)
	}
	defer reader.Close()

	return decodeManifest(reader)
}

func decodeManifest(r io.Reader) (map[string]ManifestEntry, error) {
	manifest := map[string]ManifestEntry{}
	if err := json.NewDecoder(r).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return manifest, nil
}

// slidesFromObjects turns bucket object names into slides. Image objects are
// ordered naturally by file name and numbered from 1; everything else is skipped.
func slidesFromObjects(names []string, manifest map[string]ManifestEntry, sign func(string) (string, error)) ([]models.Slide, error) {
	var images []string
	for _, name := range names {
		if isImage(name) {
			images = append(images, name)
		}
	}

	sort.Slice(images, func(i, j int) bool {
		return naturalLess(path.Base(images[i]), path.Base(images[j]))
	})

	slides := make([]models.Slide, 0, len(images))
	for i, name := range images {
		url, err := sign(name)
		if err != nil {
			return nil, fmt.Errorf("error creating signed URL for %s: %w", name, err)
		}

		base := strings.TrimSuffix(path.Base(name), path.Ext(name))
		entry := manifest[base]
		if entry.ProjectName == "" {
			entry.ProjectName = base
		}
		if entry.Alt == "" {
			entry.Alt = entry.ProjectName
		}

		slides = append(slides, models.Slide{
			ID:              i + 1,
			Image:           url,
			Alt:             entry.Alt,
			ProjectName:     entry.ProjectName,
			BackgroundColor: entry.BackgroundColor,
			URL:             entry.URL,
		})
	}

	return slides, nil
}

func isImage(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range imageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// naturalLess compares strings treating runs of digits as numbers,
// so "slide2" sorts before "slide10"
func naturalLess(s1, s2 string) bool {
	i, j := 0, 0
	for i < len(s1) && j < len(s2) {
		c1, c2 := rune(s1[i]), rune(s2[j])

		if unicode.IsDigit(c1) && unicode.IsDigit(c2) {
			start1 := i
			for i < len(s1) && unicode.IsDigit(rune(s1[i])) {
				i++
			}
			start2 := j
			for j < len(s2) && unicode.IsDigit(rune(s2[j])) {
				j++
			}

			n1, _ := strconv.Atoi(s1[start1:i])
			n2, _ := strconv.Atoi(s2[start2:j])
			if n1 != n2 {
				return n1 < n2
			}
			continue
		}

		if c1 != c2 {
			return c1 < c2
		}
		i++
		j++
	}

	return len(s1)-i < len(s2)-j
}
