package warranty

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warranty-hub-backend/domain"
	"warranty-hub-backend/entities"
	"warranty-hub-backend/internal/utils/mailing"
	"warranty-hub-backend/internal/utils/pdfgen"
	"warranty-hub-backend/internal/utils/storage"
	"warranty-hub-backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	WarrantyService interface {
		CreateWarranty(ctx context.Context, req domain.CreateWarrantyRequest, storeID string) (domain.WarrantyResponse, error)
		GetWarranties(ctx context.Context, storeID string, status string, page, limit int) ([]domain.WarrantyResponse, int64, error)
		GetWarrantyByID(ctx context.Context, id string, storeID string) (domain.WarrantyResponse, error)
		UpdateWarranty(ctx context.Context, id string, req domain.UpdateWarrantyRequest, storeID string) error
		DeleteWarranty(ctx context.Context, id string, storeID string) error
		GetDashboardStats(ctx context.Context, storeID string) (domain.DashboardStatsResponse, error)

		AddItem(ctx context.Context, warrantyID string, req domain.WarrantyItemRequest, storeID string) (domain.WarrantyItemResponse, error)
		UpdateItem(ctx context.Context, itemID string, req domain.UpdateWarrantyItemRequest, storeID string) error
		DeleteItem(ctx context.Context, itemID string, storeID string) error
		UploadItemImage(ctx context.Context, itemID string, req domain.UploadItemImageRequest, storeID string) (domain.ImageAttachment, error)
		DeleteItemImage(ctx context.Context, itemID string, imageID string, storeID string) error

		GetCustomerWarranties(ctx context.Context, customerID string, page, limit int) ([]domain.WarrantyResponse, int64, error)
		GetCustomerWarrantyByID(ctx context.Context, id string, customerID string) (domain.WarrantyResponse, error)
		UpdateCustomerNote(ctx context.Context, itemID string, req domain.UpdateCustomerNoteRequest, customerID string) error
		RenderCertificate(ctx context.Context, id string, principalID string, role string) ([]byte, string, error)
	}

	warrantyService struct {
		warrantyRepository WarrantyRepository
		userRepository     user.UserRepository
		s3                 storage.AwsS3
	}
)

func NewWarrantyService(warrantyRepository WarrantyRepository, userRepository user.UserRepository, s3 storage.AwsS3) WarrantyService {
	return &warrantyService{
		warrantyRepository: warrantyRepository,
		userRepository:     userRepository,
		s3:                 s3,
	}
}

// allocateCode proposes the next free store-scoped code. The existence check
// reads committed state without a row lock, so a concurrent request can still
// claim the candidate first; the caller retries on the insert's unique
// violation.
func (s *warrantyService) allocateCode(ctx context.Context, storeID string) (string, error) {
	for attempt := 0; attempt < codeAllocateAttempts; attempt++ {
		maxSuffix, err := s.warrantyRepository.MaxCodeSuffix(ctx, storeID, CodePrefix)
		if err != nil {
			return "", err
		}
		candidate := NextCode(CodePrefix, maxSuffix)

		taken, err := s.warrantyRepository.CodeExists(ctx, storeID, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", domain.ErrCodeAllocationFailed
}

// notifyDaysForStore resolves the store's threshold, falling back to the
// store-side default when the profile is missing.
func (s *warrantyService) notifyDaysForStore(ctx context.Context, storeID string) int {
	profile, err := s.userRepository.GetStoreProfile(ctx, storeID)
	if err != nil {
		return domain.DefaultNotifyDays
	}
	return profile.NotifyDaysInAdvance
}

// notifyDaysForWarranty is the customer-side variant; a missing profile falls
// back to the customer-side default of 30.
func (s *warrantyService) notifyDaysForWarranty(ctx context.Context, w *entities.Warranty) int {
	profile, err := s.userRepository.GetStoreProfile(ctx, w.StoreID.String())
	if err != nil {
		return domain.CustomerNotifyDays
	}
	return profile.NotifyDaysInAdvance
}

func (s *warrantyService) CreateWarranty(ctx context.Context, req domain.CreateWarrantyRequest, storeID string) (domain.WarrantyResponse, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return domain.WarrantyResponse{}, domain.ErrParseUUID
	}

	if len(req.Items) == 0 && strings.TrimSpace(req.ProductName) == "" {
		return domain.WarrantyResponse{}, domain.ErrEmptyWarranty
	}

	itemRequests := CollectItems(req)
	inputs := make([]ItemInput, 0, len(itemRequests))
	serials := make([]string, 0, len(itemRequests))
	for _, itemReq := range itemRequests {
		input, err := BuildItem(itemReq)
		if err != nil {
			return domain.WarrantyResponse{}, err
		}
		inputs = append(inputs, input)
		serials = append(serials, input.Serial)
	}
	for i, serial := range AssignSerials(serials) {
		inputs[i].Serial = serial
	}

	customerEmail := NormalizeEmail(req.CustomerEmail)
	var customerID *uuid.UUID
	if customerEmail != "" {
		if account, err := s.userRepository.GetUserByEmail(ctx, customerEmail); err == nil && account.Role == domain.RoleCustomer {
			customerID = &account.ID
		}
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		code, err := s.allocateCode(ctx, storeUUID.String())
		if err != nil {
			return domain.WarrantyResponse{}, err
		}

		warranty := &entities.Warranty{
			ID:            uuid.New(),
			StoreID:       storeUUID,
			Code:          code,
			CustomerID:    customerID,
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerEmail: customerEmail,
			CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		}
		for _, input := range inputs {
			warranty.Items = append(warranty.Items, &entities.WarrantyItem{
				ID:             uuid.New(),
				WarrantyID:     warranty.ID,
				Serial:         input.Serial,
				ProductName:    input.ProductName,
				PurchaseDate:   input.PurchaseDate,
				ExpiryDate:     input.ExpiryDate,
				DurationMonths: input.DurationMonths,
				DurationDays:   input.DurationDays,
				Coverage:       input.Coverage,
				Note:           input.Note,
				Images:         "[]",
			})
		}

		err = s.warrantyRepository.CreateWarranty(ctx, warranty)
		if errors.Is(err, domain.ErrCodeTaken) {
			// lost the race for the candidate; allocate a fresh one
			continue
		}
		if err != nil {
			return domain.WarrantyResponse{}, err
		}

		res := MapWarranty(warranty, s.notifyDaysForStore(ctx, storeID))
		s.sendCertificateMail(warranty, res)
		return res, nil
	}
	return domain.WarrantyResponse{}, domain.ErrCodeAllocationFailed
}

func (s *warrantyService) sendCertificateMail(w *entities.Warranty, res domain.WarrantyResponse) {
	if w.CustomerEmail == "" {
		return
	}
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your warranty certificate <b>%s</b> has been issued.</p>"+
			"<p>You can download it at any time: <a href=\"%s%s\">certificate PDF</a></p>",
		w.CustomerName, w.Code, mailing.LoadMailConfig().AppURL, res.PDFPath,
	)
	mailing.SendMailAsync(w.CustomerEmail, "Your warranty certificate "+w.Code, body)
}

func (s *warrantyService) GetWarranties(ctx context.Context, storeID string, status string, page, limit int) ([]domain.WarrantyResponse, int64, error) {
	notifyDays := s.notifyDaysForStore(ctx, storeID)
	warranties, count, err := s.warrantyRepository.GetWarranties(ctx, storeID, status, notifyDays, page, limit)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	response := make([]domain.WarrantyResponse, 0, len(warranties))
	for _, w := range warranties {
		response = append(response, MapWarrantyAt(w, notifyDays, now))
	}
	return response, count, nil
}

// getOwnedWarranty loads a warranty and enforces store ownership. Missing and
// foreign warranties both surface as not-found so the endpoint does not
// confirm existence to non-owners.
func (s *warrantyService) getOwnedWarranty(ctx context.Context, id string, storeID string) (*entities.Warranty, error) {
	warranty, err := s.warrantyRepository.GetWarrantyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWarrantyNotFound
		}
		return nil, err
	}
	if warranty.StoreID.String() != storeID {
		return nil, domain.ErrWarrantyNotFound
	}
	return warranty, nil
}

// getOwnedItem enforces store ownership through the parent warranty.
func (s *warrantyService) getOwnedItem(ctx context.Context, itemID string, storeID string) (*entities.WarrantyItem, error) {
	item, err := s.warrantyRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWarrantyItemNotFound
		}
		return nil, err
	}
	if item.Warranty == nil || item.Warranty.StoreID.String() != storeID {
		return nil, domain.ErrWarrantyItemNotFound
	}
	return item, nil
}

func (s *warrantyService) GetWarrantyByID(ctx context.Context, id string, storeID string) (domain.WarrantyResponse, error) {
	warranty, err := s.getOwnedWarranty(ctx, id, storeID)
	if err != nil {
		return domain.WarrantyResponse{}, err
	}
	return MapWarranty(warranty, s.notifyDaysForStore(ctx, storeID)), nil
}

func (s *warrantyService) UpdateWarranty(ctx context.Context, id string, req domain.UpdateWarrantyRequest, storeID string) error {
	warranty, err := s.getOwnedWarranty(ctx, id, storeID)
	if err != nil {
		return err
	}

	if req.CustomerName != "" {
		warranty.CustomerName = strings.TrimSpace(req.CustomerName)
	}
	if req.CustomerPhone != "" {
		warranty.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	}
	if req.CustomerEmail != "" {
		email := NormalizeEmail(req.CustomerEmail)
		warranty.CustomerEmail = email
		warranty.CustomerID = nil
		if account, err := s.userRepository.GetUserByEmail(ctx, email); err == nil && account.Role == domain.RoleCustomer {
			warranty.CustomerID = &account.ID
		}
	}

	return s.warrantyRepository.UpdateWarranty(ctx, warranty)
}

func (s *warrantyService) DeleteWarranty(ctx context.Context, id string, storeID string) error {
	warranty, err := s.getOwnedWarranty(ctx, id, storeID)
	if err != nil {
		return err
	}

	// attachment cleanup is best-effort; a missing object is not an error
	for _, item := range warranty.Items {
		for _, image := range DecodeImages(item.Images) {
			if objectKey := s.s3.GetObjectKeyFromLink(image.URL); objectKey != "" {
				_ = s.s3.DeleteFile(objectKey)
			}
		}
	}

	return s.warrantyRepository.DeleteWarranty(ctx, id)
}

func (s *warrantyService) GetDashboardStats(ctx context.Context, storeID string) (domain.DashboardStatsResponse, error) {
	return s.warrantyRepository.GetDashboardStats(ctx, storeID, s.notifyDaysForStore(ctx, storeID))
}

func (s *warrantyService) AddItem(ctx context.Context, warrantyID string, req domain.WarrantyItemRequest, storeID string) (domain.WarrantyItemResponse, error) {
	warranty, err := s.getOwnedWarranty(ctx, warrantyID, storeID)
	if err != nil {
		return domain.WarrantyItemResponse{}, err
	}

	input, err := BuildItem(req)
	if err != nil {
		return domain.WarrantyItemResponse{}, err
	}

	if input.Serial == "" {
		// auto-assign past the serials already persisted on this warranty
		persisted, err := s.warrantyRepository.GetItemSerials(ctx, warrantyID)
		if err != nil {
			return domain.WarrantyItemResponse{}, err
		}
		assigned := AssignSerials(append(persisted, ""))
		input.Serial = assigned[len(assigned)-1]
	}

	item := &entities.WarrantyItem{
		ID:             uuid.New(),
		WarrantyID:     warranty.ID,
		Serial:         input.Serial,
		ProductName:    input.ProductName,
		PurchaseDate:   input.PurchaseDate,
		ExpiryDate:     input.ExpiryDate,
		DurationMonths: input.DurationMonths,
		DurationDays:   input.DurationDays,
		Coverage:       input.Coverage,
		Note:           input.Note,
		Images:         "[]",
	}
	if err := s.warrantyRepository.AddItem(ctx, item); err != nil {
		return domain.WarrantyItemResponse{}, err
	}

	return MapItemAt(item, s.notifyDaysForStore(ctx, storeID), time.Now()), nil
}

func (s *warrantyService) UpdateItem(ctx context.Context, itemID string, req domain.UpdateWarrantyItemRequest, storeID string) error {
	item, err := s.getOwnedItem(ctx, itemID, storeID)
	if err != nil {
		return err
	}

	// Merge partial input with existing values, then rebuild so expiry and the
	// duration pair are recomputed together.
	merged := domain.WarrantyItemRequest{
		ProductName:    item.ProductName,
		Serial:         item.Serial,
		PurchaseDate:   item.PurchaseDate.Format(dateLayout),
		DurationMonths: req.DurationMonths,
		Coverage:       req.Coverage,
		Note:           req.Note,
	}
	if req.ProductName != "" {
		merged.ProductName = req.ProductName
	}
	if req.Serial != "" {
		merged.Serial = req.Serial
	}
	if req.PurchaseDate != "" {
		merged.PurchaseDate = req.PurchaseDate
	}
	if req.ExpiryDate != "" {
		merged.ExpiryDate = req.ExpiryDate
	} else if req.DurationMonths == 0 && item.ExpiryDate != nil {
		merged.ExpiryDate = item.ExpiryDate.Format(dateLayout)
	}
	if req.DurationMonths == 0 && item.DurationMonths != nil {
		merged.DurationMonths = *item.DurationMonths
	}
	if req.Coverage == "" && item.Coverage != nil {
		merged.Coverage = *item.Coverage
	}
	if req.Note == "" && item.Note != nil {
		merged.Note = *item.Note
	}

	input, err := BuildItem(merged)
	if err != nil {
		return err
	}

	item.ProductName = input.ProductName
	item.Serial = input.Serial
	item.PurchaseDate = input.PurchaseDate
	item.ExpiryDate = input.ExpiryDate
	item.DurationMonths = input.DurationMonths
	item.DurationDays = input.DurationDays
	item.Coverage = input.Coverage
	item.Note = input.Note

	return s.warrantyRepository.UpdateItem(ctx, item)
}

func (s *warrantyService) DeleteItem(ctx context.Context, itemID string, storeID string) error {
	item, err := s.getOwnedItem(ctx, itemID, storeID)
	if err != nil {
		return err
	}

	for _, image := range DecodeImages(item.Images) {
		if objectKey := s.s3.GetObjectKeyFromLink(image.URL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.warrantyRepository.DeleteItem(ctx, itemID)
}

func (s *warrantyService) UploadItemImage(ctx context.Context, itemID string, req domain.UploadItemImageRequest, storeID string) (domain.ImageAttachment, error) {
	item, err := s.getOwnedItem(ctx, itemID, storeID)
	if err != nil {
		return domain.ImageAttachment{}, err
	}

	imageID := uuid.New().String()
	fileName := fmt.Sprintf("warranty-item-%s-%s", item.ID.String(), imageID)
	objectKey, err := s.s3.UploadFile(fileName, req.Image, "warranty-items", storage.AllowImage...)
	if err != nil {
		return domain.ImageAttachment{}, err
	}

	attachment := domain.ImageAttachment{
		ID:   imageID,
		URL:  s.s3.GetPublicLinkKey(objectKey),
		Name: req.Image.Filename,
		Mime: req.Image.Header.Get("Content-Type"),
		Size: req.Image.Size,
	}

	images := append(DecodeImages(item.Images), attachment)
	item.Images = EncodeImages(images)
	if err := s.warrantyRepository.UpdateItem(ctx, item); err != nil {
		return domain.ImageAttachment{}, err
	}
	return attachment, nil
}

func (s *warrantyService) DeleteItemImage(ctx context.Context, itemID string, imageID string, storeID string) error {
	item, err := s.getOwnedItem(ctx, itemID, storeID)
	if err != nil {
		return err
	}

	images := DecodeImages(item.Images)
	kept := make([]domain.ImageAttachment, 0, len(images))
	found := false
	for _, image := range images {
		if image.ID == imageID {
			found = true
			if objectKey := s.s3.GetObjectKeyFromLink(image.URL); objectKey != "" {
				_ = s.s3.DeleteFile(objectKey)
			}
			continue
		}
		kept = append(kept, image)
	}
	if !found {
		return domain.ErrImageNotFound
	}

	item.Images = EncodeImages(kept)
	return s.warrantyRepository.UpdateItem(ctx, item)
}

func (s *warrantyService) GetCustomerWarranties(ctx context.Context, customerID string, page, limit int) ([]domain.WarrantyResponse, int64, error) {
	warranties, count, err := s.warrantyRepository.GetWarrantiesByCustomer(ctx, customerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	response := make([]domain.WarrantyResponse, 0, len(warranties))
	for _, w := range warranties {
		response = append(response, MapWarrantyAt(w, s.notifyDaysForWarranty(ctx, w), now))
	}
	return response, count, nil
}

// getLinkedWarranty enforces the customer link; customer endpoints report 403
// rather than hiding existence.
func (s *warrantyService) getLinkedWarranty(ctx context.Context, id string, customerID string) (*entities.Warranty, error) {
	warranty, err := s.warrantyRepository.GetWarrantyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWarrantyNotFound
		}
		return nil, err
	}
	if warranty.CustomerID == nil || warranty.CustomerID.String() != customerID {
		return nil, domain.ErrNoLinkedCustomer
	}
	return warranty, nil
}

func (s *warrantyService) GetCustomerWarrantyByID(ctx context.Context, id string, customerID string) (domain.WarrantyResponse, error) {
	warranty, err := s.getLinkedWarranty(ctx, id, customerID)
	if err != nil {
		return domain.WarrantyResponse{}, err
	}
	return MapWarranty(warranty, s.notifyDaysForWarranty(ctx, warranty)), nil
}

func (s *warrantyService) UpdateCustomerNote(ctx context.Context, itemID string, req domain.UpdateCustomerNoteRequest, customerID string) error {
	item, err := s.warrantyRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrWarrantyItemNotFound
		}
		return err
	}
	if item.Warranty == nil || item.Warranty.CustomerID == nil || item.Warranty.CustomerID.String() != customerID {
		return domain.ErrNoLinkedCustomer
	}

	item.CustomerNote = optionalString(req.CustomerNote)
	return s.warrantyRepository.UpdateItem(ctx, item)
}

func (s *warrantyService) RenderCertificate(ctx context.Context, id string, principalID string, role string) ([]byte, string, error) {
	var warranty *entities.Warranty
	var err error
	var notifyDays int

	switch role {
	case domain.RoleStore:
		warranty, err = s.getOwnedWarranty(ctx, id, principalID)
		if err == nil {
			notifyDays = s.notifyDaysForStore(ctx, principalID)
		}
	case domain.RoleCustomer:
		warranty, err = s.getLinkedWarranty(ctx, id, principalID)
		if err == nil {
			notifyDays = s.notifyDaysForWarranty(ctx, warranty)
		}
	default:
		return nil, "", domain.ErrUserNotAllowed
	}
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := pdfgen.RenderCertificate(MapWarranty(warranty, notifyDays))
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("warranty-%s.pdf", warranty.Code), nil
}
