package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fintab/statement-recovery/internal/models"
)

func TestPostProcessDatePropagationAndNoise(t *testing.T) {
	records := []models.TransactionRecord{
		{Date: "21 Oct 22", PaymentType: "DD", Details1: "COUNCIL TAX", PaidOut: "30.00"},
		{Details1: "Interest rate 19.90 %"},
		{Details1: "Your Bank Account details"},
		{Details1: strings.Repeat("terms and conditions ", 12)},
		{PaymentType: "VIS", Details1: "GWR TAUNTON SST", PaidOut: "5.00"},
	}

	want := []models.TransactionRecord{
		{Date: "21 Oct 22", PaymentType: "DD", Details1: "COUNCIL TAX", PaidOut: "30.00"},
		{Date: "21 Oct 22", PaymentType: "VIS", Details1: "GWR TAUNTON SST", PaidOut: "5.00"},
	}

	got := postProcess(records)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("postProcess() = %+v, want %+v", got, want)
	}
}

func TestPostProcessEndMarkerTruncates(t *testing.T) {
	records := []models.TransactionRecord{
		{Date: "19 Oct 22", PaymentType: "DD", Details1: "BRITISH GAS", PaidOut: "8.10"},
		{Details1: "BALANCE CARRIED FORWARD", Balance: "91.90"},
		{Date: "20 Oct 22", PaymentType: "VIS", Details1: "GWR TAUNTON SST", PaidOut: "5.00"},
	}

	got := postProcess(records)
	if len(got) != 1 {
		t.Fatalf("postProcess() kept %d records, want 1: %+v", len(got), got)
	}
	if got[0].Details1 != "BRITISH GAS" {
		t.Errorf("got %+v, want the record before the end marker", got[0])
	}
}

func TestPostProcessBalanceOnlyOnLastRecordOfDate(t *testing.T) {
	records := []models.TransactionRecord{
		{Date: "19 Oct 22", PaymentType: "DD", Details1: "BRITISH GAS", Balance: "100.00"},
		{Date: "19 Oct 22", PaymentType: "CR", Details1: "SALARY", PaidIn: "50.00", Balance: "150.00"},
	}

	want := []models.TransactionRecord{
		{Date: "19 Oct 22", PaymentType: "DD", Details1: "BRITISH GAS", PaidOut: "100.00"},
		{Date: "19 Oct 22", PaymentType: "CR", Details1: "SALARY", PaidIn: "50.00", Balance: "150.00"},
	}

	got := postProcess(records)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("postProcess() = %+v, want %+v", got, want)
	}
}

func TestPostProcessDropsImageRecords(t *testing.T) {
	records := []models.TransactionRecord{
		{Details1: "dataimage placeholder leaked from extraction"},
		{Date: "19 Oct 22", PaymentType: "DD", Details1: "BRITISH GAS", PaidOut: "8.10"},
	}

	got := postProcess(records)
	if len(got) != 1 || got[0].Details1 != "BRITISH GAS" {
		t.Errorf("postProcess() = %+v, want only the real transaction", got)
	}
}

func TestPostProcessLeadingSummariesSkipped(t *testing.T) {
	records := []models.TransactionRecord{
		{Details1: "Opening Balance", Balance: "500.00"},
		{Details1: "Payments In", PaidIn: "1200.00"},
		{Date: "19 Oct 22", PaymentType: "DD", Details1: "BRITISH GAS", PaidOut: "8.10"},
	}

	got := postProcess(records)
	if len(got) != 1 || got[0].Details1 != "BRITISH GAS" {
		t.Errorf("postProcess() = %+v, want only the dated transaction", got)
	}
}
