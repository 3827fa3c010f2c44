package paymentgateway

import (
	"context"
	"fmt"

	"github.com/akgarg0472/urlshortener-payment-service/pkg/errs"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

const midtransGatewayName = "midtrans"

// MidtransAdapter backs the gateway contract with Midtrans Snap for checkout
// and the core API for settlement status. Midtrans requires the merchant to
// assign the order id, so this adapter generates one.
type MidtransAdapter struct {
	snapClient *snap.Client
	coreClient *coreapi.Client
}

func CreateMidtransAdapter(snapClient *snap.Client, coreClient *coreapi.Client) *MidtransAdapter {
	return &MidtransAdapter{
		snapClient: snapClient,
		coreClient: coreClient,
	}
}

func CreateMidtransClients(serverKey string) (*snap.Client, *coreapi.Client) {
	midtrans.ServerKey = serverKey
	midtrans.Environment = midtrans.Sandbox // Use midtrans.Production for production

	snapClient := &snap.Client{}
	snapClient.New(midtrans.ServerKey, midtrans.Environment)

	coreClient := &coreapi.Client{}
	coreClient.New(midtrans.ServerKey, midtrans.Environment)

	return snapClient, coreClient
}

func (a *MidtransAdapter) Name() string {
	return midtransGatewayName
}

func (a *MidtransAdapter) CreateOrder(_ context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("error generating order id: %v", err)
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID.String(),
			GrossAmt: input.Amount,
		},
	}

	snapResp, snapErr := a.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPaymentGateway, snapErr.GetMessage())
	}

	return &CreateOrderResult{
		OrderID:     orderID.String(),
		ApprovalURL: snapResp.RedirectURL,
	}, nil
}

func (a *MidtransAdapter) CaptureOrder(_ context.Context, orderID string) (*CaptureResult, error) {
	statusResp, statusErr := a.coreClient.CheckTransaction(orderID)
	if statusErr != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPaymentGateway, statusErr.GetMessage())
	}

	status := statusResp.TransactionStatus
	if status == "settlement" || status == "capture" {
		return &CaptureResult{Status: CaptureStatusCompleted}, nil
	}

	return &CaptureResult{Status: status}, nil
}
