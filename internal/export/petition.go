package export

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/money"
)

const petitionDateLayout = "02.01.2006"

var petitionSubjects = map[PetitionType]string{
	PetitionIncomeDeclaration: "Yurt Dışı Kaynaklı Gelir Bildirimi",
	PetitionExemptionRequest:  "Gelir Vergisi İstisnası Talebi",
}

var petitionTemplate = template.Must(template.New("petition").Parse(`DİLEKÇE

Tarih: {{.Date}}

{{.TaxOffice}} Vergi Dairesi Başkanlığı'na

Adı Soyadı: {{.Name}}
TC Kimlik No: {{.NationalID}}
Adres: {{.Address}}
Telefon: {{.Phone}}

KONU: {{.Subject}}

Sayın Yetkili,

Yurt dışındaki müşterilerime sunduğum hizmetler karşılığında elde ettiğim gelirler hakkında bilgi vermek isterim.

Gelir Kaynağım: {{.IncomeSource}}
Şirket Durumu: {{.CompanyStatus}}
Toplam Gelir: {{.Total}}
Kayıtlı Gelir Sayısı: {{.EntryCount}}

Gelir Vergisi Kanunu'nun 23. maddesi kapsamında, yıllık {{.Limit}} tutarına kadar olan yurt dışı kaynaklı hizmet gelirlerimin gelir vergisinden istisna tutulmasını talep ederim.

Ekler:
1. Gelir belgelerinin listesi
2. Döviz alış belgeleri
3. Banka hesap ekstreleri

Gereğini saygılarımla arz ederim.

{{.Name}}
İmza: __________________
`))

type petitionData struct {
	Date          string
	TaxOffice     string
	Name          string
	NationalID    string
	Address       string
	Phone         string
	Subject       string
	IncomeSource  string
	CompanyStatus string
	Total         string
	EntryCount    int
	Limit         string
}

// Petition renders the plain-text petition to the tax office. The report
// must carry a profile.
func Petition(r *Report) (*File, error) {
	if r.Profile == nil {
		return nil, fmt.Errorf("%w: petition needs a profile", domain.ErrProfileNotFound)
	}

	typ := r.PetitionType
	if typ == "" {
		typ = PetitionIncomeDeclaration
	}
	subject, ok := petitionSubjects[typ]
	if !ok {
		return nil, fmt.Errorf("%w: petition type %q", domain.ErrUnsupportedExportKind, typ)
	}

	p := r.Profile
	data := petitionData{
		Date:          r.GeneratedAt.Format(petitionDateLayout),
		TaxOffice:     p.TaxOffice,
		Name:          p.FullName(),
		NationalID:    p.NationalID,
		Address:       p.Address,
		Phone:         p.Phone,
		Subject:       subject,
		IncomeSource:  p.IncomeSource.Label(),
		CompanyStatus: p.CompanyStatus.Label(),
		Total:         money.TL(r.Total),
		EntryCount:    len(r.Entries),
		Limit:         money.TL(r.Limit),
	}

	var buf bytes.Buffer
	if err := petitionTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render petition: %w", err)
	}

	return &File{
		Name:        fmt.Sprintf("dilekce_%s_%s.txt", p.NationalID, r.GeneratedAt.Format(domain.DateLayout)),
		ContentType: ContentTypeText,
		Data:        buf.Bytes(),
	}, nil
}
