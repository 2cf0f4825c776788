// backend/src/processors/presentation_processor.go
package processors

import (
	"github.com/username/benefitpass/backend/src/models"
	"github.com/username/benefitpass/backend/src/security/validation"
)

// thumbnailSource is one candidate in the thumbnail priority chain. It
// returns "" when the source has nothing to offer.
type thumbnailSource func(models.Voucher) string

// PresentationProcessor builds the display model around a voucher: title,
// subtitle, thumbnail, the composed ledger and the record lookup.
type PresentationProcessor struct {
	ledgerProcessor      *LedgerProcessor
	placeholderThumbnail string
	thumbnailSources     []thumbnailSource
}

func NewPresentationProcessor(ledgerProcessor *LedgerProcessor, placeholderThumbnail string) *PresentationProcessor {
	return &PresentationProcessor{
		ledgerProcessor:      ledgerProcessor,
		placeholderThumbnail: placeholderThumbnail,
		// Priority order: fund logo for regular vouchers, then the fund
		// owner's logo, then the product photo for product vouchers. The
		// first source that yields an image wins; this is not a merge.
		thumbnailSources: []thumbnailSource{
			func(v models.Voucher) string {
				if v.Type == models.VoucherTypeRegular && v.Fund != nil {
					return v.Fund.Logo
				}
				return ""
			},
			func(v models.Voucher) string {
				if v.Fund != nil {
					return v.Fund.Organization.Logo
				}
				return ""
			},
			func(v models.Voucher) string {
				if v.Type == models.VoucherTypeProduct && v.Product != nil {
					return v.Product.Photo
				}
				return ""
			},
		},
	}
}

// Process assembles the presentation model. The voucher itself is embedded
// untouched; everything else is derived.
func (p *PresentationProcessor) Process(voucher models.Voucher) models.VoucherPresentation {
	presentation := models.VoucherPresentation{
		Voucher:      voucher,
		Thumbnail:    p.Thumbnail(voucher),
		Ledger:       p.ledgerProcessor.Process(voucher),
		RecordsByKey: p.RecordsByKey(voucher),
	}

	if voucher.Product != nil {
		presentation.Title = voucher.Product.Name
		presentation.Description = validation.SanitizeText(voucher.Product.Description)
		if voucher.Product.Organization != nil {
			presentation.Subtitle = voucher.Product.Organization.Name
		} else if voucher.Fund != nil {
			presentation.Subtitle = voucher.Fund.Organization.Name
		}
	} else if voucher.Fund != nil {
		presentation.Title = voucher.Fund.Name
		presentation.Subtitle = voucher.Fund.Organization.Name
	}

	return presentation
}

// Thumbnail returns the first available image in priority order, falling
// back to the configured placeholder.
func (p *PresentationProcessor) Thumbnail(voucher models.Voucher) string {
	for _, source := range p.thumbnailSources {
		if ref := source(voucher); ref != "" {
			return ref
		}
	}
	return p.placeholderThumbnail
}

// RecordsByKey folds the voucher's records into a lookup keyed by record
// type. Records are visited in attachment order and a later record
// overwrites an earlier one on the same key: last write wins.
func (p *PresentationProcessor) RecordsByKey(voucher models.Voucher) map[string]string {
	byKey := make(map[string]string, len(voucher.Records))
	for _, record := range voucher.Records {
		byKey[record.Key] = validation.SanitizeText(record.Value)
	}
	return byKey
}
