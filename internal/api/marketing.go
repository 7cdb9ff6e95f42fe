package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	interf "github.com/budleaf/marketing/engine/internal/interfaces"
	models "github.com/budleaf/marketing/engine/internal/models"
	service "github.com/budleaf/marketing/engine/internal/services"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type MarketingHandler struct {
	router *mux.Router
	orch   *service.Orchestrator
	deals  interf.DealStorage
	logger *zap.Logger
}

type DiscountResponse struct {
	Discount    string                  `json:"discount"`
	Redemptions []models.DealRedemption `json:"redemptions,omitempty"`
}

type BalanceResponse struct {
	Points int64 `json:"points"`
}

type EnrollRequest struct {
	CustomerID uuid.UUID `json:"customer_id"`
	ProgramID  uuid.UUID `json:"program_id"`
}

type AttributeRequest struct {
	Order       models.Order            `json:"order"`
	Touchpoints []models.Touchpoint     `json:"touchpoints"`
	Model       models.AttributionModel `json:"model"`
}

func NewHandler(orch *service.Orchestrator, deals interf.DealStorage, logger *zap.Logger) *MarketingHandler {
	router := mux.NewRouter()
	handler := &MarketingHandler{router, orch, deals, logger}
	router.HandleFunc("/discount", handler.DiscountHandler).Methods(http.MethodPost)
	router.HandleFunc("/attribute", handler.AttributeHandler).Methods(http.MethodPost)
	router.HandleFunc("/enroll", handler.EnrollHandler).Methods(http.MethodPost)
	router.HandleFunc("/balance/{member}", handler.BalanceHandler).Methods(http.MethodGet)
	router.HandleFunc("/tier/{member}", handler.TierHandler).Methods(http.MethodGet)
	router.HandleFunc("/deals", handler.GetActiveDealsHandler).Methods(http.MethodGet)
	router.HandleFunc("/deal/{id}", handler.GetDealHandler).Methods(http.MethodGet)
	router.HandleFunc("/all", handler.GetAllDealsHandler).Methods(http.MethodGet)
	router.HandleFunc("/deal", handler.SaveDealHandler).Methods(http.MethodPost)

	return handler
}

func (m *MarketingHandler) ServeHTTP(w http.ResponseWriter, res *http.Request) {
	m.router.ServeHTTP(w, res)
}

func (m *MarketingHandler) Log(msg string, service string, err error) {
	m.logger.Error(msg,
		zap.String("service", service),
		zap.Error(err),
	)
}

// Клиентские ошибки отдаем как 4xx, остальное - 500
func (m *MarketingHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInsufficientBalance), errors.Is(err, models.ErrIneligibleDeal):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Предпросмотр скидки по корзине, без фиксации погашений
func (m MarketingHandler) DiscountHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		m.Log("Get request body", "DiscountHandler", err)
		http.Error(w, "Body is empty", http.StatusBadRequest)
		return
	}
	defer req.Body.Close()

	order, err := service.ParseOrder(string(body))
	if err != nil {
		m.Log("Parse order", "DiscountHandler", err)
		m.fail(w, err)
		return
	}

	redemptions, discount, err := m.orch.PreviewDiscount(req.Context(), order)
	if err != nil {
		m.Log("Preview", "DiscountHandler", err)
		m.fail(w, err)
		return
	}
	response := &DiscountResponse{discount.StringFixed(2), redemptions}

	j, err := json.Marshal(response)
	if err != nil {
		m.Log("Marshal", "DiscountHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}

// Атрибуция переданной цепочки касаний, без сохранения.
// Движок берем из оркестратора, чтобы настройки полураспада действовали и тут.
func (m MarketingHandler) AttributeHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		m.Log("Get request body", "AttributeHandler", err)
		http.Error(w, "Body is empty", http.StatusBadRequest)
		return
	}
	defer req.Body.Close()

	request := &AttributeRequest{}
	err = json.Unmarshal(body, request)
	if err != nil {
		m.Log("Unmarshal", "AttributeHandler", err)
		http.Error(w, "Body is not correct", http.StatusBadRequest)
		return
	}

	attribution, err := m.orch.AttributeChain(request.Order, request.Touchpoints, request.Model)
	if err != nil {
		m.Log("Attribute", "AttributeHandler", err)
		m.fail(w, err)
		return
	}

	j, err := json.Marshal(attribution)
	if err != nil {
		m.Log("Marshal", "AttributeHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}

// Регистрация клиента в программе лояльности
func (m MarketingHandler) EnrollHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		m.Log("Get request body", "EnrollHandler", err)
		http.Error(w, "Body is empty", http.StatusBadRequest)
		return
	}
	defer req.Body.Close()

	request := &EnrollRequest{}
	err = json.Unmarshal(body, request)
	if err != nil || request.CustomerID == uuid.Nil || request.ProgramID == uuid.Nil {
		m.Log("Unmarshal", "EnrollHandler", err)
		http.Error(w, "Body is not correct", http.StatusBadRequest)
		return
	}

	member, err := m.orch.Enroll(req.Context(), request.CustomerID, request.ProgramID)
	if err != nil {
		m.Log("Enroll", "EnrollHandler", err)
		m.fail(w, err)
		return
	}

	j, err := json.Marshal(member)
	if err != nil {
		m.Log("Marshal", "EnrollHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}

// Баланс участника
func (m MarketingHandler) BalanceHandler(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id, err := uuid.Parse(vars["member"])
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	points, err := m.orch.GetBalance(req.Context(), id)
	if err != nil {
		m.Log("Get balance", "BalanceHandler", err)
		m.fail(w, err)
		return
	}

	j, err := json.Marshal(&BalanceResponse{points})
	if err != nil {
		m.Log("Marshal", "BalanceHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}

// Текущий уровень участника
func (m MarketingHandler) TierHandler(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id, err := uuid.Parse(vars["member"])
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	tier, err := m.orch.GetTier(req.Context(), id)
	if err != nil {
		m.Log("Get tier", "TierHandler", err)
		m.fail(w, err)
		return
	}
	if tier == nil {
		http.Error(w, "Tier not assigned", http.StatusNotFound)
		return
	}

	j, err := json.Marshal(tier)
	if err != nil {
		m.Log("Marshal", "TierHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}

// Активные акции
func (m MarketingHandler) GetActiveDealsHandler(w http.ResponseWriter, req *http.Request) {
	deals, err := m.deals.GetActiveDeals(req.Context())
	if err != nil {
		m.Log("DB get", "GetActiveDealsHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if deals == nil {
		http.Error(w, "Active deals not found", http.StatusNotFound)
		return
	}
	j, err := json.Marshal(deals)
	if err != nil {
		m.Log("Marshal", "GetActiveDealsHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}

// Все акции
func (m MarketingHandler) GetAllDealsHandler(w http.ResponseWriter, req *http.Request) {
	deals, err := m.deals.GetAllDeals(req.Context())
	if err != nil {
		m.Log("DB get", "GetAllDealsHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if deals == nil {
		http.Error(w, "Deals not found", http.StatusNotFound)
		return
	}
	j, err := json.Marshal(deals)
	if err != nil {
		m.Log("Marshal", "GetAllDealsHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}

// Акция по идентификатору
func (m MarketingHandler) GetDealHandler(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	deal, err := m.deals.GetDeal(req.Context(), id)
	if err != nil {
		m.fail(w, err)
		return
	}
	j, err := json.Marshal(deal)
	if err != nil {
		m.Log("Marshal", "GetDealHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}

// Создать/обновить акцию
func (m MarketingHandler) SaveDealHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		m.Log("Get request body", "SaveDealHandler", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer req.Body.Close()
	deal := &models.Deal{}
	err = json.Unmarshal(body, deal)
	if err != nil {
		m.Log("Unmarshal", "SaveDealHandler", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err = m.deals.SaveDeal(req.Context(), *deal)
	if err != nil {
		m.Log("SaveDeal", "SaveDealHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
