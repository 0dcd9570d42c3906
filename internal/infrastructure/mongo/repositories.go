package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Trackit-api/internal/domain"
	"github.com/jhoicas/Trackit-api/internal/domain/entity"
	"github.com/jhoicas/Trackit-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository       = (*CompanyRepo)(nil)
	_ repository.UserRepository          = (*UserRepo)(nil)
	_ repository.WarehouseRepository     = (*WarehouseRepo)(nil)
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.ActionRepository        = (*ActionRepo)(nil)
)

// findOne decodifica un documento por filtro; (false, nil) si no existe.
func findOne(ctx context.Context, col *mongo.Collection, filter any, out any) (bool, error) {
	err := col.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	return true, nil
}

// findAll decodifica todos los documentos del filtro con el orden indicado.
func findAll[D any](ctx context.Context, col *mongo.Collection, filter any, sort bson.D) ([]D, error) {
	cursor, err := col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	docs := make([]D, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return docs, nil
}

func insert(ctx context.Context, col *mongo.Collection, doc any, dupErr error) error {
	if _, err := col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dupErr
		}
		return fmt.Errorf("insert %s: %w", col.Name(), err)
	}
	return nil
}

// updateByID aplica $set sobre _id; sin coincidencia devuelve notFound.
func updateByID(ctx context.Context, col *mongo.Collection, id string, set bson.M, notFound error) error {
	res, err := col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update %s: %w", col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

// CompanyRepo colección Firmalar.
type CompanyRepo struct{ col *mongo.Collection }

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	return insert(ctx, r.col, newCompanyDoc(c), domain.ErrDuplicate)
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var d companyDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *CompanyRepo) FindByInviteCode(ctx context.Context, code string) ([]*entity.Company, error) {
	docs, err := findAll[companyDoc](ctx, r.col, bson.M{"davet_kodu": code}, bson.D{{Key: "olusturma_tarihi", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Company, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func (r *CompanyRepo) UpdateInviteCode(ctx context.Context, id, code string) error {
	return updateByID(ctx, r.col, id, bson.M{"davet_kodu": code, "guncelleme_tarihi": time.Now().UTC()}, domain.ErrNotFound)
}

func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	return updateByID(ctx, r.col, c.ID, bson.M{
		"ad": c.Name, "vergi_no": c.TaxID, "telefon": c.Phone, "eposta": c.Email, "adres": c.Address,
		"guncelleme_tarihi": c.UpdatedAt,
	}, domain.ErrNotFound)
}

// UserRepo colección Kullanicilar.
type UserRepo struct{ col *mongo.Collection }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return insert(ctx, r.col, newUserDoc(u), domain.ErrEmailAlreadyExists)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var d userDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var d userDoc
	filter := bson.M{"eposta": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(email) + "$", Options: "i"}}
	ok, err := findOne(ctx, r.col, filter, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *UserRepo) UpdateMembership(ctx context.Context, userID, companyID, role, jobTitle string) error {
	return updateByID(ctx, r.col, userID, bson.M{
		"firma_id": companyID, "yetki_id": role, "is_unvani": jobTitle, "guncelleme_tarihi": time.Now().UTC(),
	}, domain.ErrUserNotFound)
}

func (r *UserRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	docs, err := findAll[userDoc](ctx, r.col, bson.M{"firma_id": companyID}, bson.D{{Key: "ad", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// WarehouseRepo colección Depolar.
type WarehouseRepo struct{ col *mongo.Collection }

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	return insert(ctx, r.col, newWarehouseDoc(w), domain.ErrDuplicate)
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var d warehouseDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	return updateByID(ctx, r.col, w.ID, bson.M{
		"ad": w.Name, "adres": w.Address, "aktif": w.Active, "guncelleme_tarihi": w.UpdatedAt,
	}, domain.ErrNotFound)
}

func (r *WarehouseRepo) ListByCompany(ctx context.Context, companyID string, onlyActive bool) ([]*entity.Warehouse, error) {
	filter := bson.M{"firma_id": companyID}
	if onlyActive {
		filter["aktif"] = true
	}
	docs, err := findAll[warehouseDoc](ctx, r.col, filter, bson.D{{Key: "ad", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Warehouse, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// CustomerRepo colección Musteriler.
type CustomerRepo struct{ col *mongo.Collection }

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return insert(ctx, r.col, partyDoc{c.ID, c.CompanyID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.CreatedAt}, domain.ErrDuplicate)
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var d partyDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.customer(), nil
}

func (r *CustomerRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Customer, error) {
	docs, err := findAll[partyDoc](ctx, r.col, bson.M{"firma_id": companyID}, bson.D{{Key: "ad", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Customer, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.customer())
	}
	return out, nil
}

// SupplierRepo colección Tedarikciler.
type SupplierRepo struct{ col *mongo.Collection }

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return insert(ctx, r.col, partyDoc{s.ID, s.CompanyID, s.Name, s.TaxID, s.Email, s.Phone, s.Address, s.CreatedAt}, domain.ErrDuplicate)
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var d partyDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.supplier(), nil
}

func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Supplier, error) {
	docs, err := findAll[partyDoc](ctx, r.col, bson.M{"firma_id": companyID}, bson.D{{Key: "ad", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Supplier, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.supplier())
	}
	return out, nil
}

// StockRepo colección Stoklar.
type StockRepo struct{ col *mongo.Collection }

func (r *StockRepo) Create(ctx context.Context, s *entity.StockItem) error {
	return insert(ctx, r.col, newStockDoc(s), domain.ErrDuplicate)
}

func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	var d stockDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

// GetForUpdate lee el ítem; el bloqueo lo da el compare-and-set de SetQuantity
// (un escritor concurrente provoca WriteConflict y la transacción se reintenta).
func (r *StockRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *StockRepo) SetQuantity(ctx context.Context, id string, expected, next decimal.Decimal) error {
	filter := bson.M{"_id": id, "miktar": toDecimal128(expected)}
	update := bson.M{"$set": bson.M{"miktar": toDecimal128(next), "guncelleme_tarihi": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update miktar: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *StockRepo) FindInWarehouse(ctx context.Context, warehouseID, productName, unit string) (*entity.StockItem, error) {
	var d stockDoc
	ok, err := findOne(ctx, r.col, bson.M{"depo_id": warehouseID, "urun_adi": productName, "birim": unit}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *StockRepo) ListByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*entity.StockItem, error) {
	return r.list(ctx, bson.M{"firma_id": companyID, "depo_id": warehouseID})
}

func (r *StockRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.StockItem, error) {
	return r.list(ctx, bson.M{"firma_id": companyID})
}

func (r *StockRepo) list(ctx context.Context, filter bson.M) ([]*entity.StockItem, error) {
	docs, err := findAll[stockDoc](ctx, r.col, filter, bson.D{{Key: "urun_adi", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.StockItem, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// MovementRepo colección Stok_Hareketleri.
type MovementRepo struct{ col *mongo.Collection }

func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return insert(ctx, r.col, newMovementDoc(m), domain.ErrDuplicate)
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	var d movementDoc
	ok, err := findOne(ctx, r.col, bson.M{"_id": id}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovementRepo) ListByCompany(ctx context.Context, companyID, kind string) ([]*entity.StockMovement, error) {
	filter := bson.M{"firma_id": companyID}
	if kind != "" {
		filter["islem_turu"] = kind
	}
	docs, err := findAll[movementDoc](ctx, r.col, filter, bson.D{{Key: "tarih", Value: -1}})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.StockMovement, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// OrderRepo colecciones Siparisler y Siparis_Gecmisi.
type OrderRepo struct {
	orders  *mongo.Collection
	history *mongo.Collection
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	doc := orderDoc{o.ID, o.CompanyID, o.CustomerID, o.Description, o.Status, o.CreatedAt, o.CreatedBy}
	return insert(ctx, r.orders, doc, domain.ErrDuplicate)
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var d orderDoc
	ok, err := findOne(ctx, r.orders, bson.M{"_id": id}, &d)
	if err != nil || !ok {
		return nil, err
	}
	return d.entity(), nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return updateByID(ctx, r.orders, id, bson.M{"durum": status}, domain.ErrNotFound)
}

func (r *OrderRepo) ListByCompany(ctx context.Context, companyID, customerID, status string) ([]*entity.Order, error) {
	filter := bson.M{"firma_id": companyID}
	if customerID != "" {
		filter["musteri_id"] = customerID
	}
	if status != "" {
		filter["durum"] = status
	}
	docs, err := findAll[orderDoc](ctx, r.orders, filter, bson.D{{Key: "olusturma_tarihi", Value: -1}})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func (r *OrderRepo) AppendHistory(ctx context.Context, h *entity.OrderHistory) error {
	doc := orderHistoryDoc{h.ID, h.OrderID, h.Timestamp, h.Status, h.Description}
	return insert(ctx, r.history, doc, domain.ErrDuplicate)
}

func (r *OrderRepo) ListHistory(ctx context.Context, orderID string) ([]*entity.OrderHistory, error) {
	docs, err := findAll[orderHistoryDoc](ctx, r.history, bson.M{"siparis_id": orderID}, bson.D{{Key: "tarih", Value: 1}})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.OrderHistory, 0, len(docs))
	for _, d := range docs {
		out = append(out, &entity.OrderHistory{
			ID: d.ID, OrderID: d.OrderID, Timestamp: d.Timestamp, Status: d.Status, Description: d.Description,
		})
	}
	return out, nil
}

// ActionRepo colección Eylemler (solo altas).
type ActionRepo struct{ col *mongo.Collection }

func (r *ActionRepo) Create(ctx context.Context, a *entity.Action) error {
	doc := actionDoc{a.ID, a.CompanyID, a.UserID, a.UserName, a.Type, a.Description, a.RelatedDocumentID, a.Timestamp}
	return insert(ctx, r.col, doc, domain.ErrDuplicate)
}

func (r *ActionRepo) ListByCompany(ctx context.Context, companyID, userID string) ([]*entity.Action, error) {
	filter := bson.M{"firma_id": companyID}
	if userID != "" {
		filter["kullanici_id"] = userID
	}
	docs, err := findAll[actionDoc](ctx, r.col, filter, bson.D{{Key: "eylem_tarihi", Value: -1}})
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Action, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}
