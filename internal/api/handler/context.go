package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vendemas/pedidos-api/internal/core/domain"
	"github.com/vendemas/pedidos-api/internal/core/ports"
)

// bindError reports a payload the binder could not decode.
func bindError(err error) error {
	return domain.Validationf("invalid payload: %v", err)
}

// formImage returns the optional multipart file under field as an image
// input, with a closer to release it once the request is served.
func formImage(c echo.Context, field string) (*ports.ImageInput, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, nil, domain.Validationf("invalid %s upload: %v", field, err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, domain.Internalf("open upload: %v", err)
	}
	return &ports.ImageInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
