package entity

import "time"

// Tipos de acción registrados en Eylemler.
const (
	ActionStockEntry      = "stok_girisi"
	ActionStockExit       = "stok_cikisi"
	ActionTransfer        = "transfer"
	ActionOrderCompleted  = "siparis_tamamlandi"
	ActionOrderCreated    = "siparis_olusturuldu"
	ActionMovementDeleted = "hareket_silindi"
	ActionCompanyJoined   = "firmaya_katilim"
	ActionCompanyCreated  = "firma_olusturuldu"
	ActionInviteRotated   = "davet_kodu_yenilendi"
	ActionStockCreated    = "stok_olusturuldu"
)

// Action registro de auditoría append-only (colección Eylemler).
type Action struct {
	ID                string
	CompanyID         string
	UserID            string
	UserName          string
	Type              string
	Description       string
	RelatedDocumentID string
	Timestamp         time.Time
}
