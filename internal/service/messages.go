package service

// User-facing messages, in the language of the product
const (
	MsgInvalidCredentials  = "E-posta veya şifre hatalı."
	MsgDuplicateEmail      = "Bu e-posta adresi zaten kayıtlı."
	MsgGenerationFailed    = "Diyet planı oluşturulurken bir hata oluştu. Lütfen tekrar deneyin."
	MsgRegenerationFailed  = "Plan yenilenirken hata oluştu."
	MsgGeolocationMissing  = "Tarayıcınız konum servisini desteklemiyor."
	MsgGeolocationDenied   = "Konum alınamadı. Lütfen izin verdiğinizden emin olun."
	MsgStoreLookupFailed   = "Marketler bulunamadı. Lütfen daha sonra tekrar deneyin."
	MsgUnknownPlace        = "Bilinmeyen Yer"
	MsgGoalReached         = "🎉 Tebrikler! Hedef kilonuza ulaştınız! Harika bir iş çıkardınız."
	MsgGoalRemainingFormat = "Hedefinize %.1f kg kaldı. Devam edin!"
	MsgWeighInReminderFmt  = "Son tartılmanın üzerinden %d gün geçti. Güncel kilonuzu girmeyi unutmayın!"
	MsgRegenerateConfirm   = "Mevcut profilinize göre yeni bir plan oluşturulacak. Emin misiniz?"
	MsgRegenerateExpired   = "Haftalık süreniz doldu! Güncel kilonuzla yeni bir plan oluşturulsun mu?"
	MsgPlanExpiredTitle    = "Yeni Hafta, Yeni Liste!"
	MsgPlanExpiredBody     = "Bu diyet listesi 7 günü doldurdu. Vücudunu şaşırtmak için listeyi güncelleme zamanı."
	MsgBMIHealthy          = "Kilonuz sağlıklı aralıkta. Formunuzu koruyun!"
	MsgBMIGainFormat       = "Sağlıklı aralığa girmek için en az %.1f kg almalısınız."
	MsgBMILoseFormat       = "Sağlıklı aralığa girmek için en az %.1f kg vermelisiniz."
)

// NotificationKind classifies tracker notifications
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationInfo    NotificationKind = "info"
	NotificationWarning NotificationKind = "warning"
)

// Notification is a message shown next to the tracker
type Notification struct {
	Kind NotificationKind `json:"type"`
	Text string           `json:"text"`
}
