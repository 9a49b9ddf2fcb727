package wizard

// MaxDocumentSize is the per-file upload cap.
const MaxDocumentSize int64 = 5 * 1024 * 1024

type DocumentSlot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Accept   string `json:"accept"`
	Required bool   `json:"required"`
}

var checklist = []DocumentSlot{
	{ID: "photo", Name: "Passport Size Photo", Accept: "image/*", Required: true},
	{ID: "signature", Name: "Signature", Accept: "image/*", Required: true},
	{ID: "education", Name: "Educational Certificate", Accept: ".pdf,.jpg,.jpeg,.png", Required: true},
	{ID: "experience", Name: "Experience Certificate", Accept: ".pdf,.jpg,.jpeg,.png", Required: false},
	{ID: "caste", Name: "Caste Certificate", Accept: ".pdf,.jpg,.jpeg,.png", Required: false},
	{ID: "identity", Name: "Identity Proof (Aadhar/PAN)", Accept: ".pdf,.jpg,.jpeg,.png", Required: true},
}

// Checklist returns a copy of the fixed document checklist.
func Checklist() []DocumentSlot {
	out := make([]DocumentSlot, len(checklist))
	copy(out, checklist)
	return out
}

func slotByID(id string) (DocumentSlot, bool) {
	for _, s := range checklist {
		if s.ID == id {
			return s, true
		}
	}
	return DocumentSlot{}, false
}
