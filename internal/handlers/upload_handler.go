package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyzlearns/ShopEase1/internal/checkout"
)

// ProofField is the multipart field holding the payment screenshot.
const ProofField = "paymentScreenshot"

// multipartOverhead leaves room for the billing fields next to the file.
const multipartOverhead = 1 << 20

// limitBody caps the request body so an oversized upload fails while it is
// being read.
func limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, checkout.MaxProofSize+multipartOverhead)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// readProof loads the uploaded screenshot into memory. It returns (nil, nil)
// when the field is absent, leaving the decision to the checkout service.
func readProof(c *gin.Context) (*checkout.ProofFile, error) {
	header, err := c.FormFile(ProofField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, checkout.MaxProofSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	size := header.Size
	if int64(len(data)) > size {
		size = int64(len(data))
	}
	return &checkout.ProofFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        size,
		Data:        data,
	}, nil
}
