package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/harrowdigital/printdesk-backend/pkg/config"
	"github.com/harrowdigital/printdesk-backend/pkg/db/models"
	pkgerrors "github.com/harrowdigital/printdesk-backend/pkg/errors"
	"github.com/harrowdigital/printdesk-backend/pkg/sendgrid"
)

// Transport dispatches a rendered message. Satisfied by *sendgrid.Client.
type Transport interface {
	Send(ctx context.Context, msg sendgrid.Message) error
}

// Receipt carries the submission fields the receipt templates render.
// PrintDimensions comes from the form payload and is not persisted.
type Receipt struct {
	Reference       string
	FirstName       string
	Surname         string
	Email           string
	StudentID       string
	Course          string
	PrintSize       string
	PrintDimensions string
	PaperType       string
	Quantity        int
	Price           string
	Notes           string
}

// Service renders and dispatches the two lifecycle emails. Callers decide
// whether a send failure is fatal to the surrounding operation.
type Service interface {
	SendReceipt(ctx context.Context, receipt Receipt) error
	SendReady(ctx context.Context, order *models.PrintRequest) error
}

type service struct {
	transport  Transport
	senderName string
	university string
}

// NewService wires the notification sender.
func NewService(transport Transport, cfg config.MailConfig) (Service, error) {
	if transport == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mail transport required")
	}
	return &service{
		transport:  transport,
		senderName: cfg.SenderName,
		university: cfg.UniversityName,
	}, nil
}

func (s *service) SendReceipt(ctx context.Context, receipt Receipt) error {
	mctx := mailContext{
		Reference:       receipt.Reference,
		FirstName:       receipt.FirstName,
		Surname:         receipt.Surname,
		Email:           receipt.Email,
		StudentID:       receipt.StudentID,
		Course:          receipt.Course,
		PrintSize:       receipt.PrintSize,
		PrintDimensions: receipt.PrintDimensions,
		PaperType:       receipt.PaperType,
		Quantity:        receipt.Quantity,
		Price:           receipt.Price,
		Notes:           receipt.Notes,
		SenderName:      s.senderName,
		UniversityName:  s.university,
	}

	msg, err := renderMessage(mctx, fmt.Sprintf("Print Request Received - %s", receipt.Reference), receiptPlainTmpl, receiptHTMLTmpl)
	if err != nil {
		return err
	}
	msg.ToEmail = receipt.Email
	msg.ToName = fmt.Sprintf("%s %s", receipt.FirstName, receipt.Surname)

	if err := s.transport.Send(ctx, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send receipt email")
	}
	return nil
}

func (s *service) SendReady(ctx context.Context, order *models.PrintRequest) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}

	mctx := mailContext{
		Reference:      order.Reference,
		FirstName:      order.FirstName,
		Surname:        order.Surname,
		Email:          order.Email,
		StudentID:      order.StudentID,
		Course:         order.Course,
		PrintSize:      order.PrintSize,
		PaperType:      order.PaperType,
		Quantity:       order.Quantity,
		Price:          order.EstimatedPrice,
		SenderName:     s.senderName,
		UniversityName: s.university,
	}

	msg, err := renderMessage(mctx, fmt.Sprintf("Your Prints Are Ready! - %s", order.Reference), readyPlainTmpl, readyHTMLTmpl)
	if err != nil {
		return err
	}
	msg.ToEmail = order.Email
	msg.ToName = fmt.Sprintf("%s %s", order.FirstName, order.Surname)

	if err := s.transport.Send(ctx, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send ready email")
	}
	return nil
}

// executor is the shared surface of text/template and html/template.
type executor interface {
	Execute(wr io.Writer, data any) error
}

func renderMessage(mctx mailContext, subject string, plain, html executor) (sendgrid.Message, error) {
	var plainBuf, htmlBuf bytes.Buffer
	if err := plain.Execute(&plainBuf, mctx); err != nil {
		return sendgrid.Message{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render plain body")
	}
	if err := html.Execute(&htmlBuf, mctx); err != nil {
		return sendgrid.Message{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render html body")
	}
	return sendgrid.Message{
		Subject:   subject,
		PlainBody: plainBuf.String(),
		HTMLBody:  htmlBuf.String(),
	}, nil
}
