package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/cashflow/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tag at end of line with no closing bracket, common in SGML exports.
	openTagRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

var payeePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"COMPRA CARTAO ",
	"PIX ENVIADO ",
	"PIX RECEBIDO ",
	"TED ",
}

// LoadOFX reads an OFX or QFX statement. Credits become income, debits
// become expenses at their absolute value, TRNTYPE is the category and the
// payee the subcategory.
func LoadOFX(ctx context.Context, r io.Reader) (*Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var txns []model.Transaction
	dropped := 0

	collect := func(list *ofxgo.TransactionList, account string) {
		if list == nil {
			return
		}
		for _, ofxTx := range list.Transactions {
			txn, err := convertOFX(ofxTx)
			if err != nil {
				slog.Debug("dropping OFX transaction", "account", account, "fitid", ofxTx.FiTID, "error", err)
				dropped++
				continue
			}
			txns = append(txns, txn)
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			collect(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			collect(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))
		}
	}

	slog.Debug("Parsed OFX statement",
		"transactions", len(txns),
		"bank_statements", len(resp.Bank),
		"cc_statements", len(resp.CreditCard))

	return newResult(txns, dropped), nil
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return openTagRegex.ReplaceAllString(content, "$1>")
}

func convertOFX(ofxTx ofxgo.Transaction) (model.Transaction, error) {
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}
	if ofxTx.DtPosted.IsZero() {
		return model.Transaction{}, fmt.Errorf("missing posting date")
	}

	typ := model.Income
	if amount.IsNegative() {
		typ = model.Expense
		amount = amount.Neg()
	}

	y, m, d := ofxTx.DtPosted.Date()
	return model.Transaction{
		Date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Amount:      amount,
		Category:    ofxTx.TrnType.String(),
		Subcategory: payeeName(ofxTx),
		Type:        typ,
	}, nil
}

// payeeName prefers PAYEE, then NAME, then MEMO when NAME is generic.
func payeeName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && (name == "" || isGenericDescription(name)) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range payeePrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}

	if name == "" {
		return "Sem descricao"
	}
	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
