package warranty

import (
	"context"
	"testing"
	"time"

	"warranty-hub-backend/domain"
	"warranty-hub-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubWarrantyRepository implements WarrantyRepository with per-method hooks so
// each test only wires the calls its scenario exercises.
type stubWarrantyRepository struct {
	createWarrantyFn func(ctx context.Context, warranty *entities.Warranty) error
	getWarrantyFn    func(ctx context.Context, id string) (*entities.Warranty, error)
	maxCodeSuffixFn  func(ctx context.Context, storeID string, prefix string) (int, error)
	codeExistsFn     func(ctx context.Context, storeID string, code string) (bool, error)
	getItemFn        func(ctx context.Context, id string) (*entities.WarrantyItem, error)
	getItemSerialsFn func(ctx context.Context, warrantyID string) ([]string, error)
	addItemFn        func(ctx context.Context, item *entities.WarrantyItem) error
	updateItemFn     func(ctx context.Context, item *entities.WarrantyItem) error
}

func (s *stubWarrantyRepository) CreateWarranty(ctx context.Context, warranty *entities.Warranty) error {
	return s.createWarrantyFn(ctx, warranty)
}

func (s *stubWarrantyRepository) GetWarrantyByID(ctx context.Context, id string) (*entities.Warranty, error) {
	if s.getWarrantyFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.getWarrantyFn(ctx, id)
}

func (s *stubWarrantyRepository) GetWarranties(ctx context.Context, storeID string, status string, notifyDays int, page, limit int) ([]*entities.Warranty, int64, error) {
	return nil, 0, nil
}

func (s *stubWarrantyRepository) GetWarrantiesByCustomer(ctx context.Context, customerID string, page, limit int) ([]*entities.Warranty, int64, error) {
	return nil, 0, nil
}

func (s *stubWarrantyRepository) UpdateWarranty(ctx context.Context, warranty *entities.Warranty) error {
	return nil
}

func (s *stubWarrantyRepository) DeleteWarranty(ctx context.Context, id string) error {
	return nil
}

func (s *stubWarrantyRepository) MaxCodeSuffix(ctx context.Context, storeID string, prefix string) (int, error) {
	return s.maxCodeSuffixFn(ctx, storeID, prefix)
}

func (s *stubWarrantyRepository) CodeExists(ctx context.Context, storeID string, code string) (bool, error) {
	return s.codeExistsFn(ctx, storeID, code)
}

func (s *stubWarrantyRepository) AddItem(ctx context.Context, item *entities.WarrantyItem) error {
	if s.addItemFn == nil {
		return nil
	}
	return s.addItemFn(ctx, item)
}

func (s *stubWarrantyRepository) GetItemByID(ctx context.Context, id string) (*entities.WarrantyItem, error) {
	if s.getItemFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.getItemFn(ctx, id)
}

func (s *stubWarrantyRepository) GetItemSerials(ctx context.Context, warrantyID string) ([]string, error) {
	if s.getItemSerialsFn == nil {
		return nil, nil
	}
	return s.getItemSerialsFn(ctx, warrantyID)
}

func (s *stubWarrantyRepository) UpdateItem(ctx context.Context, item *entities.WarrantyItem) error {
	if s.updateItemFn == nil {
		return nil
	}
	return s.updateItemFn(ctx, item)
}

func (s *stubWarrantyRepository) DeleteItem(ctx context.Context, id string) error {
	return nil
}

func (s *stubWarrantyRepository) GetDashboardStats(ctx context.Context, storeID string, notifyDays int) (domain.DashboardStatsResponse, error) {
	return domain.DashboardStatsResponse{}, nil
}

func (s *stubWarrantyRepository) GetItemsEnteringNotifyWindow(ctx context.Context, day time.Time) ([]*entities.WarrantyItem, error) {
	return nil, nil
}

// stubUserRepository answers every lookup with not-found unless a hook is set,
// which exercises the notify-day fallbacks.
type stubUserRepository struct {
	getUserByEmailFn  func(ctx context.Context, email string) (*entities.User, error)
	getStoreProfileFn func(ctx context.Context, userID string) (*entities.StoreProfile, error)
}

func (s *stubUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return nil
}

func (s *stubUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getUserByEmailFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.getUserByEmailFn(ctx, email)
}

func (s *stubUserRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (s *stubUserRepository) CreateStoreProfile(ctx context.Context, profile *entities.StoreProfile) error {
	return nil
}

func (s *stubUserRepository) GetStoreProfile(ctx context.Context, userID string) (*entities.StoreProfile, error) {
	if s.getStoreProfileFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.getStoreProfileFn(ctx, userID)
}

func (s *stubUserRepository) UpdateStoreProfile(ctx context.Context, profile *entities.StoreProfile) error {
	return nil
}

func TestCreateWarranty_AssignsCodeAndSerials(t *testing.T) {
	storeID := uuid.New().String()
	var created *entities.Warranty

	repo := &stubWarrantyRepository{
		maxCodeSuffixFn: func(ctx context.Context, gotStoreID string, prefix string) (int, error) {
			assert.Equal(t, storeID, gotStoreID)
			assert.Equal(t, CodePrefix, prefix)
			return 41, nil
		},
		codeExistsFn: func(ctx context.Context, gotStoreID string, code string) (bool, error) {
			return false, nil
		},
		createWarrantyFn: func(ctx context.Context, warranty *entities.Warranty) error {
			created = warranty
			return nil
		},
	}
	service := NewWarrantyService(repo, &stubUserRepository{}, nil)

	res, err := service.CreateWarranty(context.Background(), domain.CreateWarrantyRequest{
		CustomerName: "Jane Doe",
		Items: []domain.WarrantyItemRequest{
			{ProductName: "Vacuum", PurchaseDate: "2024-01-01", DurationMonths: 12},
			{ProductName: "Filter kit", PurchaseDate: "2024-01-01", DurationMonths: 6},
		},
	}, storeID)
	require.NoError(t, err)

	assert.Equal(t, "WR042", res.Code)
	require.NotNil(t, created)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "SN001", created.Items[0].Serial)
	assert.Equal(t, "SN002", created.Items[1].Serial)
	assert.Equal(t, created.ID, created.Items[0].WarrantyID)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "SN001", res.Items[0].Serial)
}

func TestCreateWarranty_LinksExistingCustomerByEmail(t *testing.T) {
	customer := &entities.User{ID: uuid.New(), Role: domain.RoleCustomer}
	var created *entities.Warranty

	repo := &stubWarrantyRepository{
		maxCodeSuffixFn: func(ctx context.Context, storeID string, prefix string) (int, error) {
			return 0, nil
		},
		codeExistsFn: func(ctx context.Context, storeID string, code string) (bool, error) {
			return false, nil
		},
		createWarrantyFn: func(ctx context.Context, warranty *entities.Warranty) error {
			created = warranty
			return nil
		},
	}
	users := &stubUserRepository{
		getUserByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			assert.Equal(t, "jane@example.com", email)
			return customer, nil
		},
	}
	service := NewWarrantyService(repo, users, nil)

	_, err := service.CreateWarranty(context.Background(), domain.CreateWarrantyRequest{
		CustomerName:  "Jane Doe",
		CustomerEmail: " Jane@Example.COM ",
		ProductName:   "Vacuum",
		PurchaseDate:  "2024-01-01",
	}, uuid.New().String())
	require.NoError(t, err)

	require.NotNil(t, created)
	require.NotNil(t, created.CustomerID)
	assert.Equal(t, customer.ID, *created.CustomerID)
	assert.Equal(t, "jane@example.com", created.CustomerEmail)
}

func TestCreateWarranty_StoreAccountEmailIsNotLinked(t *testing.T) {
	store := &entities.User{ID: uuid.New(), Role: domain.RoleStore}
	var created *entities.Warranty

	repo := &stubWarrantyRepository{
		maxCodeSuffixFn: func(ctx context.Context, storeID string, prefix string) (int, error) {
			return 0, nil
		},
		codeExistsFn: func(ctx context.Context, storeID string, code string) (bool, error) {
			return false, nil
		},
		createWarrantyFn: func(ctx context.Context, warranty *entities.Warranty) error {
			created = warranty
			return nil
		},
	}
	users := &stubUserRepository{
		getUserByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return store, nil
		},
	}
	service := NewWarrantyService(repo, users, nil)

	_, err := service.CreateWarranty(context.Background(), domain.CreateWarrantyRequest{
		CustomerName:  "Shop Next Door",
		CustomerEmail: "othershop@example.com",
		ProductName:   "Vacuum",
		PurchaseDate:  "2024-01-01",
	}, uuid.New().String())
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Nil(t, created.CustomerID)
}

func TestCreateWarranty_EmptyPayloadRejected(t *testing.T) {
	service := NewWarrantyService(&stubWarrantyRepository{}, &stubUserRepository{}, nil)

	_, err := service.CreateWarranty(context.Background(), domain.CreateWarrantyRequest{
		CustomerName: "Jane Doe",
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrEmptyWarranty)
}

func TestCreateWarranty_AllocationExhaustsAfterFiveChecks(t *testing.T) {
	existenceChecks := 0

	repo := &stubWarrantyRepository{
		maxCodeSuffixFn: func(ctx context.Context, storeID string, prefix string) (int, error) {
			return 7, nil
		},
		codeExistsFn: func(ctx context.Context, storeID string, code string) (bool, error) {
			existenceChecks++
			return true, nil
		},
		createWarrantyFn: func(ctx context.Context, warranty *entities.Warranty) error {
			t.Fatal("insert must not be attempted when allocation never finds a free code")
			return nil
		},
	}
	service := NewWarrantyService(repo, &stubUserRepository{}, nil)

	_, err := service.CreateWarranty(context.Background(), domain.CreateWarrantyRequest{
		CustomerName: "Jane Doe",
		ProductName:  "Vacuum",
		PurchaseDate: "2024-01-01",
	}, uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrCodeAllocationFailed)
	assert.Equal(t, 5, existenceChecks)
}

func TestCreateWarranty_RetriesLostRaceThreeTimes(t *testing.T) {
	inserts := 0

	repo := &stubWarrantyRepository{
		maxCodeSuffixFn: func(ctx context.Context, storeID string, prefix string) (int, error) {
			return 0, nil
		},
		codeExistsFn: func(ctx context.Context, storeID string, code string) (bool, error) {
			return false, nil
		},
		createWarrantyFn: func(ctx context.Context, warranty *entities.Warranty) error {
			inserts++
			return domain.ErrCodeTaken
		},
	}
	service := NewWarrantyService(repo, &stubUserRepository{}, nil)

	_, err := service.CreateWarranty(context.Background(), domain.CreateWarrantyRequest{
		CustomerName: "Jane Doe",
		ProductName:  "Vacuum",
		PurchaseDate: "2024-01-01",
	}, uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrCodeAllocationFailed)
	assert.Equal(t, 3, inserts)
}

func TestCreateWarranty_SerialConflictIsNotRetried(t *testing.T) {
	inserts := 0

	repo := &stubWarrantyRepository{
		maxCodeSuffixFn: func(ctx context.Context, storeID string, prefix string) (int, error) {
			return 0, nil
		},
		codeExistsFn: func(ctx context.Context, storeID string, code string) (bool, error) {
			return false, nil
		},
		createWarrantyFn: func(ctx context.Context, warranty *entities.Warranty) error {
			inserts++
			return domain.ErrSerialConflict
		},
	}
	service := NewWarrantyService(repo, &stubUserRepository{}, nil)

	_, err := service.CreateWarranty(context.Background(), domain.CreateWarrantyRequest{
		CustomerName: "Jane Doe",
		ProductName:  "Vacuum",
		PurchaseDate: "2024-01-01",
	}, uuid.New().String())

	assert.ErrorIs(t, err, domain.ErrSerialConflict)
	assert.Equal(t, 1, inserts)
}

func TestGetWarrantyByID_ForeignStoreSurfacesNotFound(t *testing.T) {
	owner := uuid.New()
	repo := &stubWarrantyRepository{
		getWarrantyFn: func(ctx context.Context, id string) (*entities.Warranty, error) {
			return &entities.Warranty{ID: uuid.New(), StoreID: owner}, nil
		},
	}
	service := NewWarrantyService(repo, &stubUserRepository{}, nil)

	_, err := service.GetWarrantyByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrWarrantyNotFound)
}

func TestGetCustomerWarrantyByID_UnlinkedSurfacesForbidden(t *testing.T) {
	otherCustomer := uuid.New()
	repo := &stubWarrantyRepository{
		getWarrantyFn: func(ctx context.Context, id string) (*entities.Warranty, error) {
			return &entities.Warranty{ID: uuid.New(), StoreID: uuid.New(), CustomerID: &otherCustomer}, nil
		},
	}
	service := NewWarrantyService(repo, &stubUserRepository{}, nil)

	_, err := service.GetCustomerWarrantyByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNoLinkedCustomer)
}

func TestAddItem_AutoSerialSkipsPersistedOnes(t *testing.T) {
	storeID := uuid.New()
	warrantyID := uuid.New()
	var added *entities.WarrantyItem

	repo := &stubWarrantyRepository{
		getWarrantyFn: func(ctx context.Context, id string) (*entities.Warranty, error) {
			return &entities.Warranty{ID: warrantyID, StoreID: storeID}, nil
		},
		getItemSerialsFn: func(ctx context.Context, id string) ([]string, error) {
			return []string{"SN001", "SN002"}, nil
		},
		addItemFn: func(ctx context.Context, item *entities.WarrantyItem) error {
			added = item
			return nil
		},
	}
	service := NewWarrantyService(repo, &stubUserRepository{}, nil)

	res, err := service.AddItem(context.Background(), warrantyID.String(), domain.WarrantyItemRequest{
		ProductName:  "Spare hose",
		PurchaseDate: "2024-01-01",
	}, storeID.String())
	require.NoError(t, err)

	require.NotNil(t, added)
	assert.Equal(t, "SN003", added.Serial)
	assert.Equal(t, "SN003", res.Serial)
	assert.Equal(t, warrantyID, added.WarrantyID)
}

func TestUpdateItem_KeepsExplicitDurationMonths(t *testing.T) {
	storeID := uuid.New()
	purchase := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := purchase.AddDate(0, 0, 31)
	months := 24
	var saved *entities.WarrantyItem

	repo := &stubWarrantyRepository{
		getItemFn: func(ctx context.Context, id string) (*entities.WarrantyItem, error) {
			return &entities.WarrantyItem{
				ID:             uuid.New(),
				Serial:         "SN001",
				ProductName:    "Vacuum",
				PurchaseDate:   purchase,
				ExpiryDate:     &expiry,
				DurationMonths: &months,
				Warranty:       &entities.Warranty{ID: uuid.New(), StoreID: storeID},
			}, nil
		},
		updateItemFn: func(ctx context.Context, item *entities.WarrantyItem) error {
			saved = item
			return nil
		},
	}
	service := NewWarrantyService(repo, &stubUserRepository{}, nil)

	err := service.UpdateItem(context.Background(), uuid.New().String(), domain.UpdateWarrantyItemRequest{
		ProductName: "Vacuum Pro",
	}, storeID.String())
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "Vacuum Pro", saved.ProductName)
	require.NotNil(t, saved.ExpiryDate)
	assert.Equal(t, expiry, *saved.ExpiryDate)
	// the stored explicit months must survive a patch that touches neither date
	require.NotNil(t, saved.DurationMonths)
	assert.Equal(t, 24, *saved.DurationMonths)
}

func TestUpdateItem_NewMonthsRederiveExpiry(t *testing.T) {
	storeID := uuid.New()
	purchase := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	expiry := purchase.AddDate(0, 12, 0)
	months := 12
	var saved *entities.WarrantyItem

	repo := &stubWarrantyRepository{
		getItemFn: func(ctx context.Context, id string) (*entities.WarrantyItem, error) {
			return &entities.WarrantyItem{
				ID:             uuid.New(),
				Serial:         "SN001",
				ProductName:    "Vacuum",
				PurchaseDate:   purchase,
				ExpiryDate:     &expiry,
				DurationMonths: &months,
				Warranty:       &entities.Warranty{ID: uuid.New(), StoreID: storeID},
			}, nil
		},
		updateItemFn: func(ctx context.Context, item *entities.WarrantyItem) error {
			saved = item
			return nil
		},
	}
	service := NewWarrantyService(repo, &stubUserRepository{}, nil)

	err := service.UpdateItem(context.Background(), uuid.New().String(), domain.UpdateWarrantyItemRequest{
		DurationMonths: 24,
	}, storeID.String())
	require.NoError(t, err)

	require.NotNil(t, saved)
	require.NotNil(t, saved.ExpiryDate)
	assert.Equal(t, purchase.AddDate(0, 24, 0), *saved.ExpiryDate)
	require.NotNil(t, saved.DurationMonths)
	assert.Equal(t, 24, *saved.DurationMonths)
}

func TestUpdateCustomerNote(t *testing.T) {
	customerID := uuid.New()
	var saved *entities.WarrantyItem

	repo := &stubWarrantyRepository{
		getItemFn: func(ctx context.Context, id string) (*entities.WarrantyItem, error) {
			return &entities.WarrantyItem{
				ID:       uuid.New(),
				Warranty: &entities.Warranty{CustomerID: &customerID},
			}, nil
		},
		updateItemFn: func(ctx context.Context, item *entities.WarrantyItem) error {
			saved = item
			return nil
		},
	}
	service := NewWarrantyService(repo, &stubUserRepository{}, nil)

	err := service.UpdateCustomerNote(context.Background(), uuid.New().String(), domain.UpdateCustomerNoteRequest{
		CustomerNote: " still under repair ",
	}, customerID.String())
	require.NoError(t, err)

	require.NotNil(t, saved)
	require.NotNil(t, saved.CustomerNote)
	assert.Equal(t, "still under repair", *saved.CustomerNote)

	// another customer on the same item gets a forbidden error
	err = service.UpdateCustomerNote(context.Background(), uuid.New().String(), domain.UpdateCustomerNoteRequest{
		CustomerNote: "mine now",
	}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNoLinkedCustomer)
}
