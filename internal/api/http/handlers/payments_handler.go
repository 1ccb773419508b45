package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/export"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/service"
)

const pdfContentType = "application/pdf"

// PaymentsHandler exposes payment history, receipts and package subscriptions.
type PaymentsHandler struct {
	service   *service.PaymentService
	companies *service.CompanyService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService, companyService *service.CompanyService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService, companies: companyService}
}

// List GET /payments.
func (h *PaymentsHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), actor, parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listing.Map(page, paymentResponse)})
}

// Get GET /payments/:id. Accepts either the uuid or the PAY- key.
func (h *PaymentsHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	payment, err := h.service.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": paymentResponse(*payment)})
}

// Create POST /payments.
func (h *PaymentsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.PaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	payment, err := h.service.Create(c.UserContext(), actor, service.PaymentInput{
		Amount:        req.Amount,
		Method:        req.Method,
		AccountNumber: req.AccountNumber,
		Reference:     req.Reference,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": paymentResponse(*payment)})
}

// Receipt GET /payments/:id/receipt.
func (h *PaymentsHandler) Receipt(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	payment, err := h.service.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	company, err := h.companies.Get(c.UserContext(), actor)
	if err != nil {
		return err
	}
	buf, filename, err := export.PaymentReceiptPDF(*company, *payment)
	if err != nil {
		return err
	}
	return sendAttachment(c, pdfContentType, filename, buf.Bytes())
}

// Packages GET /packages.
func (h *PaymentsHandler) Packages(c *fiber.Ctx) error {
	pkgs := h.service.Packages()
	out := make([]dto.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, packageResponse(p))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Subscribe POST /packages/:id/subscribe.
func (h *PaymentsHandler) Subscribe(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.SubscribeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sub, err := h.service.Subscribe(c.UserContext(), actor, c.Params("id"), service.SubscriptionInput{
		Method:        req.Method,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SubscriptionResponse{
		Package: packageResponse(sub.Package),
		Payment: paymentResponse(*sub.Payment),
		User:    userResponse(sub.User),
	}})
}
