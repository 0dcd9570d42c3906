package mongo

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/Trackit-api/internal/domain/entity"
)

// Documentos BSON: un struct por colección con los nombres de campo del almacén.
// Las cantidades se guardan como Decimal128 para que el compare-and-set sea exacto.

type companyDoc struct {
	ID         string    `bson:"_id"`
	Name       string    `bson:"ad"`
	TaxID      string    `bson:"vergi_no"`
	Phone      string    `bson:"telefon"`
	Email      string    `bson:"eposta"`
	Address    string    `bson:"adres"`
	InviteCode string    `bson:"davet_kodu"`
	CreatedAt  time.Time `bson:"olusturma_tarihi"`
	UpdatedAt  time.Time `bson:"guncelleme_tarihi"`
}

func newCompanyDoc(c *entity.Company) companyDoc {
	return companyDoc{c.ID, c.Name, c.TaxID, c.Phone, c.Email, c.Address, c.InviteCode, c.CreatedAt, c.UpdatedAt}
}

func (d companyDoc) entity() *entity.Company {
	return &entity.Company{
		ID: d.ID, Name: d.Name, TaxID: d.TaxID, Phone: d.Phone, Email: d.Email, Address: d.Address,
		InviteCode: d.InviteCode, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type userDoc struct {
	ID           string    `bson:"_id"`
	CompanyID    string    `bson:"firma_id"`
	Email        string    `bson:"eposta"`
	PasswordHash string    `bson:"sifre_hash"`
	Name         string    `bson:"ad"`
	Surname      string    `bson:"soyad"`
	Phone        string    `bson:"telefon"`
	Role         string    `bson:"yetki_id"`
	JobTitle     string    `bson:"is_unvani"`
	Status       string    `bson:"durum"`
	CreatedAt    time.Time `bson:"olusturma_tarihi"`
	UpdatedAt    time.Time `bson:"guncelleme_tarihi"`
}

func newUserDoc(u *entity.User) userDoc {
	return userDoc{u.ID, u.CompanyID, u.Email, u.PasswordHash, u.Name, u.Surname, u.Phone,
		u.Role, u.JobTitle, u.Status, u.CreatedAt, u.UpdatedAt}
}

func (d userDoc) entity() *entity.User {
	return &entity.User{
		ID: d.ID, CompanyID: d.CompanyID, Email: d.Email, PasswordHash: d.PasswordHash,
		Name: d.Name, Surname: d.Surname, Phone: d.Phone, Role: d.Role, JobTitle: d.JobTitle,
		Status: d.Status, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type warehouseDoc struct {
	ID        string    `bson:"_id"`
	CompanyID string    `bson:"firma_id"`
	Name      string    `bson:"ad"`
	Address   string    `bson:"adres"`
	Active    bool      `bson:"aktif"`
	CreatedAt time.Time `bson:"olusturma_tarihi"`
	UpdatedAt time.Time `bson:"guncelleme_tarihi"`
}

func newWarehouseDoc(w *entity.Warehouse) warehouseDoc {
	return warehouseDoc{w.ID, w.CompanyID, w.Name, w.Address, w.Active, w.CreatedAt, w.UpdatedAt}
}

func (d warehouseDoc) entity() *entity.Warehouse {
	return &entity.Warehouse{
		ID: d.ID, CompanyID: d.CompanyID, Name: d.Name, Address: d.Address, Active: d.Active,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

// partyDoc sirve para Musteriler y Tedarikciler (mismos campos).
type partyDoc struct {
	ID        string    `bson:"_id"`
	CompanyID string    `bson:"firma_id"`
	Name      string    `bson:"ad"`
	TaxID     string    `bson:"vergi_no"`
	Email     string    `bson:"eposta"`
	Phone     string    `bson:"telefon"`
	Address   string    `bson:"adres"`
	CreatedAt time.Time `bson:"olusturma_tarihi"`
}

func (d partyDoc) customer() *entity.Customer {
	return &entity.Customer{
		ID: d.ID, CompanyID: d.CompanyID, Name: d.Name, TaxID: d.TaxID,
		Email: d.Email, Phone: d.Phone, Address: d.Address, CreatedAt: d.CreatedAt,
	}
}

func (d partyDoc) supplier() *entity.Supplier {
	return &entity.Supplier{
		ID: d.ID, CompanyID: d.CompanyID, Name: d.Name, TaxID: d.TaxID,
		Email: d.Email, Phone: d.Phone, Address: d.Address, CreatedAt: d.CreatedAt,
	}
}

type stockDoc struct {
	ID          string               `bson:"_id"`
	CompanyID   string               `bson:"firma_id"`
	WarehouseID string               `bson:"depo_id"`
	ProductName string               `bson:"urun_adi"`
	Unit        string               `bson:"birim"`
	Quantity    primitive.Decimal128 `bson:"miktar"`
	CreatedAt   time.Time            `bson:"olusturma_tarihi"`
	UpdatedAt   time.Time            `bson:"guncelleme_tarihi"`
}

func newStockDoc(s *entity.StockItem) stockDoc {
	return stockDoc{s.ID, s.CompanyID, s.WarehouseID, s.ProductName, s.Unit, toDecimal128(s.Quantity), s.CreatedAt, s.UpdatedAt}
}

func (d stockDoc) entity() *entity.StockItem {
	return &entity.StockItem{
		ID: d.ID, CompanyID: d.CompanyID, WarehouseID: d.WarehouseID, ProductName: d.ProductName,
		Unit: d.Unit, Quantity: fromDecimal128(d.Quantity), CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type movementDoc struct {
	ID                     string               `bson:"_id"`
	CompanyID              string               `bson:"firma_id"`
	Timestamp              time.Time            `bson:"tarih"`
	Kind                   string               `bson:"islem_turu"`
	Description            string               `bson:"aciklama"`
	Quantity               primitive.Decimal128 `bson:"miktar"`
	ResultingQuantity      primitive.Decimal128 `bson:"sonuc_miktar"`
	StockItemID            string               `bson:"stok_id"`
	SourceWarehouseID      string               `bson:"depo_id"`
	DestinationWarehouseID string               `bson:"hedef_depo_id,omitempty"`
	CounterpartyID         string               `bson:"kaynak_id,omitempty"`
	OrderID                string               `bson:"siparis_id,omitempty"`
	UserID                 string               `bson:"kullanici_id"`
}

func newMovementDoc(m *entity.StockMovement) movementDoc {
	return movementDoc{
		ID: m.ID, CompanyID: m.CompanyID, Timestamp: m.Timestamp, Kind: m.Kind, Description: m.Description,
		Quantity: toDecimal128(m.Quantity), ResultingQuantity: toDecimal128(m.ResultingQuantity),
		StockItemID: m.StockItemID, SourceWarehouseID: m.SourceWarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID, CounterpartyID: m.CounterpartyID,
		OrderID: m.OrderID, UserID: m.UserID,
	}
}

func (d movementDoc) entity() *entity.StockMovement {
	return &entity.StockMovement{
		ID: d.ID, CompanyID: d.CompanyID, Timestamp: d.Timestamp, Kind: d.Kind, Description: d.Description,
		Quantity: fromDecimal128(d.Quantity), ResultingQuantity: fromDecimal128(d.ResultingQuantity),
		StockItemID: d.StockItemID, SourceWarehouseID: d.SourceWarehouseID,
		DestinationWarehouseID: d.DestinationWarehouseID, CounterpartyID: d.CounterpartyID,
		OrderID: d.OrderID, UserID: d.UserID,
	}
}

type orderDoc struct {
	ID          string    `bson:"_id"`
	CompanyID   string    `bson:"firma_id"`
	CustomerID  string    `bson:"musteri_id"`
	Description string    `bson:"aciklama"`
	Status      string    `bson:"durum"`
	CreatedAt   time.Time `bson:"olusturma_tarihi"`
	CreatedBy   string    `bson:"kullanici_id"`
}

func (d orderDoc) entity() *entity.Order {
	return &entity.Order{
		ID: d.ID, CompanyID: d.CompanyID, CustomerID: d.CustomerID, Description: d.Description,
		Status: d.Status, CreatedAt: d.CreatedAt, CreatedBy: d.CreatedBy,
	}
}

type orderHistoryDoc struct {
	ID          string    `bson:"_id"`
	OrderID     string    `bson:"siparis_id"`
	Timestamp   time.Time `bson:"tarih"`
	Status      string    `bson:"durum"`
	Description string    `bson:"aciklama"`
}

type actionDoc struct {
	ID                string    `bson:"_id"`
	CompanyID         string    `bson:"firma_id"`
	UserID            string    `bson:"kullanici_id"`
	UserName          string    `bson:"kullanici_adi"`
	Type              string    `bson:"islem_turu"`
	Description       string    `bson:"eylem_aciklamasi"`
	RelatedDocumentID string    `bson:"ilgili_belge_id,omitempty"`
	Timestamp         time.Time `bson:"eylem_tarihi"`
}

func (d actionDoc) entity() *entity.Action {
	return &entity.Action{
		ID: d.ID, CompanyID: d.CompanyID, UserID: d.UserID, UserName: d.UserName, Type: d.Type,
		Description: d.Description, RelatedDocumentID: d.RelatedDocumentID, Timestamp: d.Timestamp,
	}
}

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.NewDecimal128(0, 0)
	}
	return v
}

func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
