package transcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"strings"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"
)

const (
	// MaxQRCapacity is the byte-mode capacity of a version 40 symbol at
	// error-correction level L. Base64 text longer than this never fits.
	MaxQRCapacity = 2953

	// RecommendedQRInput is the largest input a user interface should
	// offer for QR encoding. It is advisory; MaxQRCapacity is the ceiling.
	RecommendedQRInput = 500 * 1024

	defaultModuleScale = 8
	quietZoneModules   = 4
)

// qrLevels lists error-correction levels from strongest to weakest.
var qrLevels = []struct {
	level qrcode.RecoveryLevel
	name  string
}{
	{qrcode.Highest, "H"},
	{qrcode.High, "Q"},
	{qrcode.Medium, "M"},
	{qrcode.Low, "L"},
}

// QROption configures a QRCodec.
type QROption func(*QRCodec)

// WithModuleScale sets the pixel width of one QR module. Values below 1 are ignored.
func WithModuleScale(px int) QROption {
	return func(c *QRCodec) {
		if px >= 1 {
			c.scale = px
		}
	}
}

// QRCodec renders frames as a single QR symbol.
//
// The frame is base64 encoded and placed in the smallest symbol version
// that holds it. Among levels reaching that version the strongest wins.
type QRCodec struct {
	scale int
}

// NewQRCodec returns a QR codec.
func NewQRCodec(opts ...QROption) *QRCodec {
	c := &QRCodec{scale: defaultModuleScale}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Kind returns KindQR.
func (c *QRCodec) Kind() Kind {
	return KindQR
}

// ContentType returns the MIME type for PNG.
func (c *QRCodec) ContentType() string {
	return KindQR.ContentType()
}

// Encode renders the frame as a PNG QR image.
func (c *QRCodec) Encode(f *Frame) (Artifact, error) {
	raw, err := f.MarshalBinary()
	if err != nil {
		return Artifact{}, err
	}
	text := base64.StdEncoding.EncodeToString(raw)
	if len(text) > MaxQRCapacity {
		return Artifact{}, newCodecError(ErrCapacityExceeded, KindQR, "encode",
			fmt.Errorf("%d base64 characters, limit %d", len(text), MaxQRCapacity))
	}

	q, level, err := smallestSymbol(text)
	if err != nil {
		return Artifact{}, newCodecError(ErrCapacityExceeded, KindQR, "encode", err)
	}

	modules := 17 + 4*q.VersionNumber + 2*quietZoneModules
	png, err := q.PNG(modules * c.scale)
	if err != nil {
		return Artifact{}, newCodecError(ErrCapacityExceeded, KindQR, "encode", err)
	}

	a := QRArtifact(png)
	a.Details.QRVersion = q.VersionNumber
	a.Details.QRLevel = level
	return a, nil
}

// smallestSymbol picks the lowest version holding text, preferring the
// strongest level at that version.
func smallestSymbol(text string) (*qrcode.QRCode, string, error) {
	var (
		best     *qrcode.QRCode
		bestName string
		lastErr  error
	)
	for _, l := range qrLevels {
		q, err := qrcode.New(text, l.level)
		if err != nil {
			lastErr = err
			continue
		}
		if best == nil || q.VersionNumber < best.VersionNumber {
			best, bestName = q, l.name
		}
	}
	if best == nil {
		return nil, "", lastErr
	}
	return best, bestName, nil
}

// Decode scans the image for a QR symbol and parses the frame it carries.
func (c *QRCodec) Decode(a Artifact) (*Frame, error) {
	if err := checkKind(KindQR, a); err != nil {
		return nil, err
	}
	text, err := scanSymbol(a.Data)
	if err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, newCodecError(ErrMalformedFrame, KindQR, "decode", err)
	}
	return ParseFrame(raw)
}

// DecodeImageText decodes an image given as base64 text, with or without
// a data URL prefix such as "data:image/png;base64,".
func (c *QRCodec) DecodeImageText(text string) (*Frame, error) {
	text = strings.TrimSpace(text)
	if _, after, ok := strings.Cut(text, ","); ok && strings.HasPrefix(text, "data:") {
		text = after
	}
	img, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, newCodecError(ErrNoSymbolFound, KindQR, "decode", err)
	}
	return c.Decode(QRArtifact(img))
}

// scanSymbol extracts the text of the QR symbol in an encoded image.
// It tries the detector first, then pure-barcode extraction.
func scanSymbol(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", newCodecError(ErrNoSymbolFound, KindQR, "decode", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", newCodecError(ErrNoSymbolFound, KindQR, "decode", err)
	}

	reader := zxingqr.NewQRCodeReader()
	attempts := []map[gozxing.DecodeHintType]interface{}{
		{gozxing.DecodeHintType_TRY_HARDER: true},
		{gozxing.DecodeHintType_PURE_BARCODE: true},
	}
	var lastErr error
	for _, hints := range attempts {
		res, err := reader.Decode(bmp, hints)
		if err == nil {
			return res.GetText(), nil
		}
		lastErr = err
	}
	return "", newCodecError(ErrNoSymbolFound, KindQR, "decode", lastErr)
}
