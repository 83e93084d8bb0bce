package background

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/drummonds/photoprism-go-api/api"
)

// album is the part of the PhotoPrism API the source needs.
type album interface {
	// photos lists photo UIDs in the album.
	photos(ctx context.Context, albumUID string) ([]string, error)
	// jpeg downloads the first JPEG file of a photo with its EXIF orientation.
	jpeg(ctx context.Context, uid string) ([]byte, int, error)
}

// PhotoPrism shows the photos of one album in turn, one per redraw.
type PhotoPrism struct {
	AlbumUID string

	api   album
	mu    sync.Mutex
	list  []string
	index int
}

// NewPhotoPrism connects to the PhotoPrism server at host using an app token.
func NewPhotoPrism(host, token, albumUID string) (*PhotoPrism, error) {
	provider := api.NewXAuthProvider(token)
	nc, err := api.NewClientWithResponses(host, api.WithRequestEditorFn(provider.Intercept))
	if err != nil {
		return nil, fmt.Errorf("photoprism client: %w", err)
	}
	return &PhotoPrism{AlbumUID: albumUID, api: prismAPI{nc}}, nil
}

// next returns the UID to show and advances.  The album listing is fetched
// lazily and again after each full cycle so new photos are picked up.
func (p *PhotoPrism) next(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index >= len(p.list) {
		list, err := p.api.photos(ctx, p.AlbumUID)
		if err != nil {
			return "", err
		}
		if len(list) == 0 {
			return "", fmt.Errorf("%w: album %s is empty", ErrMissingSource, p.AlbumUID)
		}
		p.list, p.index = list, 0
	}
	uid := p.list[p.index]
	p.index++
	return uid, nil
}

func (p *PhotoPrism) Load(ctx context.Context) (image.Image, error) {
	uid, err := p.next(ctx)
	if err != nil {
		return nil, err
	}
	body, orientation, err := p.api.jpeg(ctx, uid)
	if err != nil {
		return nil, err
	}
	rawImg, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, &DecodeError{Name: uid, Err: err}
	}
	log.Printf("photoprism photo %s orientation %d", uid, orientation)
	return orient(rawImg, orientation), nil
}

// orient applies an EXIF orientation (1-8) to img.
func orient(img image.Image, orientation int) image.Image {
	g := gift.New()
	switch orientation {
	case 2:
		g.Add(gift.FlipHorizontal())
	case 3:
		g.Add(gift.Rotate180())
	case 4:
		g.Add(gift.FlipVertical())
	case 5:
		g.Add(gift.Rotate270())
		g.Add(gift.FlipHorizontal())
	case 6:
		g.Add(gift.Rotate270())
	case 7:
		g.Add(gift.Rotate90())
		g.Add(gift.FlipHorizontal())
	case 8:
		g.Add(gift.Rotate90())
	default:
		return img
	}
	oriented := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(oriented, img)
	return oriented
}

type prismAPI struct {
	c *api.ClientWithResponses
}

func (a prismAPI) photos(ctx context.Context, albumUID string) ([]string, error) {
	params := api.SearchPhotosParams{Count: 20, S: &albumUID}
	photos, err := a.c.SearchPhotosWithResponse(ctx, &params)
	if err != nil {
		return nil, fmt.Errorf("photoprism search: %w", err)
	}
	if photos.HTTPResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photoprism search: status %d", photos.HTTPResponse.StatusCode)
	}
	if photos.JSON200 == nil {
		return nil, nil
	}
	list := make([]string, 0, len(*photos.JSON200))
	for _, photo := range *photos.JSON200 {
		if photo.UID != nil {
			list = append(list, *photo.UID)
		}
	}
	return list, nil
}

func (a prismAPI) jpeg(ctx context.Context, uid string) ([]byte, int, error) {
	photo, err := a.c.GetPhotoWithResponse(ctx, uid)
	if err != nil {
		return nil, 0, fmt.Errorf("photoprism photo %s: %w", uid, err)
	}
	if photo.JSON200 == nil || photo.JSON200.Files == nil {
		return nil, 0, fmt.Errorf("%w: photo %s has no files", ErrMissingSource, uid)
	}
	var file *api.EntityFile
	for i, f := range *photo.JSON200.Files {
		if f.Mime != nil && *f.Mime == "image/jpeg" {
			file = &(*photo.JSON200.Files)[i]
			break
		}
	}
	if file == nil || file.Hash == nil {
		return nil, 0, fmt.Errorf("%w: photo %s has no jpeg", ErrMissingSource, uid)
	}
	orientation := 1
	if file.Orientation != nil {
		orientation = *file.Orientation
	}
	dl, err := a.c.GetDownloadWithResponse(ctx, *file.Hash)
	if err != nil {
		return nil, 0, fmt.Errorf("photoprism download %s: %w", uid, err)
	}
	if dl.HTTPResponse.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("photoprism download %s: status %d", uid, dl.HTTPResponse.StatusCode)
	}
	return dl.Body, orientation, nil
}
