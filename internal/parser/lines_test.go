package parser

import (
	"reflect"
	"testing"

	"github.com/fintab/statement-recovery/internal/models"
)

func TestParseLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []models.TransactionRecord
	}{
		{
			name:  "single dated debit line",
			lines: []string{"19 Oct 22 DD BRITISH GAS 8.10 8.10"},
			want: []models.TransactionRecord{
				{
					Date:        "19 Oct 22",
					PaymentType: "DD",
					Details1:    "BRITISH GAS",
					PaidOut:     "8.10",
					Balance:     "8.10",
				},
			},
		},
		{
			name:  "three amounts with a debit type keep paid out",
			lines: []string{"12 Nov 16 VIS SOME SHOP 8.10 8.10 8.10"},
			want: []models.TransactionRecord{
				{
					Date:        "12 Nov 16",
					PaymentType: "VIS",
					Details1:    "SOME SHOP",
					PaidOut:     "8.10",
					Balance:     "8.10",
				},
			},
		},
		{
			name: "dated line absorbs following detail and amount lines",
			lines: []string{
				"19 Oct 22",
				"VIS SHOP NAME",
				"MORE DETAILS",
				"25.00 100.00",
			},
			want: []models.TransactionRecord{
				{
					Date:     "19 Oct 22",
					Details1: "VIS SHOP NAME",
					Details2: "MORE DETAILS",
					PaidOut:  "25.00",
					Balance:  "100.00",
				},
			},
		},
		{
			name:  "credit transfer moves amount to paid in",
			lines: []string{"14 Nov 16 TFR 50.00 850.00"},
			want: []models.TransactionRecord{
				{
					Date:        "14 Nov 16",
					PaymentType: "TFR",
					PaidIn:      "50.00",
					Balance:     "850.00",
				},
			},
		},
		{
			name: "leading undated line with money opens its own record",
			lines: []string{
				"CR SALARY 1000.00",
				"20 Oct 22 DD COUNCIL TAX 30.00 70.00",
			},
			want: []models.TransactionRecord{
				{
					PaymentType: "CR",
					Details1:    "SALARY",
					PaidIn:      "1000.00",
				},
				{
					Date:        "20 Oct 22",
					PaymentType: "DD",
					Details1:    "COUNCIL TAX",
					PaidOut:     "30.00",
					Balance:     "70.00",
				},
			},
		},
		{
			name: "header text is discarded",
			lines: []string{
				"DD Your Bank Account details",
				"20 Oct 22 DD COUNCIL TAX 30.00 70.00",
			},
			want: []models.TransactionRecord{
				{
					Date:        "20 Oct 22",
					PaymentType: "DD",
					Details1:    "COUNCIL TAX",
					PaidOut:     "30.00",
					Balance:     "70.00",
				},
			},
		},
		{
			name: "plain text continues the open record",
			lines: []string{
				"CR SALARY 1000.00",
				"ref october payroll",
			},
			want: []models.TransactionRecord{
				{
					PaymentType: "CR",
					Details1:    "SALARY",
					Details2:    "ref october payroll",
					PaidIn:      "1000.00",
				},
			},
		},
		{
			name:  "empty input",
			lines: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLines(tt.lines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLines() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
