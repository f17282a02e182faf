package domain

import "time"

// Task is a compliance to-do item.
type Task struct {
	ID            string
	UserID        string
	Text          string
	Details       string
	Completed     bool
	CompletedDate *time.Time
	CreatedAt     time.Time
}

// Toggle flips completion, stamping or clearing the completion date.
func (t *Task) Toggle(now time.Time) {
	t.Completed = !t.Completed
	if t.Completed {
		d := TruncateDate(now)
		t.CompletedDate = &d
		return
	}
	t.CompletedDate = nil
}

// DefaultTasks are seeded for every new profile.
func DefaultTasks() []Task {
	return []Task{
		{Text: "Ocak ayı gelir bildirimini yap", Details: "Vergi dairesine aylık bildirimi gönder"},
		{Text: "Stripe API entegrasyonunu tamamla", Details: "Ayarlar > Entegrasyonlar bölümünden API key gir"},
		{Text: "Mali müşavirle görüşme planla", Details: "İstisna limiti aşılmadan önce danış"},
	}
}
