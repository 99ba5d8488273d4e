package reader

import (
	"fmt"
	"strings"

	"github.com/achilleasa/go-restir/asset"
	"github.com/achilleasa/go-restir/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read a scene from a local file or http(s) URL. Names without a file
// extension are resolved against the built-in scenes.
func ReadScene(pathOrName string) (*scene.Scene, error) {
	if !strings.Contains(pathOrName, ".") {
		return scene.Builtin(pathOrName)
	}

	var reader Reader
	switch {
	case strings.HasSuffix(strings.ToLower(pathOrName), ".json"):
		reader = newJSONReader()
	default:
		return nil, fmt.Errorf("reader: unsupported scene format for %s", pathOrName)
	}

	res, err := asset.NewResource(pathOrName, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return reader.Read(res)
}
