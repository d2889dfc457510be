package service

import (
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	model "github.com/abdulaziz27/fermata-backend/internals/features/lessons/studentpackages/model"
)

var SnapClient snap.Client

// Panggil saat bootstrap app (sandbox)
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// GenerateSnapToken membuat Snap token + redirect_url untuk pembayaran
// student package yang belum lunas.
func GenerateSnapToken(sp model.StudentPackageModel, studentName, email string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  fmt.Sprintf("SP-%s", sp.StudentPackageID),
			GrossAmt: sp.StudentPackagePaymentTotal,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: studentName,
			Email: email,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}
