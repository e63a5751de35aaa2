// Package importer turns bank statements into transactions.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/xmlpath.v2"

	"fjacquet/finanai/internal/categorizer"
	"fjacquet/finanai/internal/currencyutils"
	"fjacquet/finanai/internal/dateutils"
	"fjacquet/finanai/internal/finerrors"
	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

// FormatCAMT053 names the supported statement format.
const FormatCAMT053 = "camt.053"

var entryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:finanai:camt053"))

// XPath expressions; entry fields are relative to an Ntry node.
var (
	xpathEntries      = xmlpath.MustCompile("//BkToCstmrStmt/Stmt/Ntry")
	xpathAmount       = xmlpath.MustCompile("Amt")
	xpathCreditDebit  = xmlpath.MustCompile("CdtDbtInd")
	xpathStatus       = xmlpath.MustCompile("Sts")
	xpathBookingDate  = xmlpath.MustCompile("BookgDt/Dt")
	xpathBookingDtTm  = xmlpath.MustCompile("BookgDt/DtTm")
	xpathValueDate    = xmlpath.MustCompile("ValDt/Dt")
	xpathAcctSvcRef   = xmlpath.MustCompile("AcctSvcrRef")
	xpathTxAcctSvcRef = xmlpath.MustCompile("NtryDtls/TxDtls/Refs/AcctSvcrRef")
	xpathRemittance   = xmlpath.MustCompile("NtryDtls/TxDtls/RmtInf/Ustrd")
	xpathAddTxInfo    = xmlpath.MustCompile("NtryDtls/TxDtls/AddtlTxInf")
	xpathAddEntryInfo = xmlpath.MustCompile("AddtlNtryInf")
	xpathCreditorName = xmlpath.MustCompile("NtryDtls/TxDtls/RltdPties/Cdtr/Nm")
	xpathDebtorName   = xmlpath.MustCompile("NtryDtls/TxDtls/RltdPties/Dbtr/Nm")
)

// CAMTImporter reads ISO 20022 CAMT.053 account statements.
type CAMTImporter struct {
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// NewCAMTImporter creates an importer that categorizes entries with c.
func NewCAMTImporter(c *categorizer.Categorizer, logger logging.Logger) *CAMTImporter {
	return &CAMTImporter{
		categorizer: c,
		logger:      logger.WithField(logging.FieldComponent, "importer"),
	}
}

// Import parses the statement at path.
func (i *CAMTImporter) Import(path string) ([]models.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			i.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	transactions, err := i.ImportReader(file, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	i.logger.Info("Imported statement",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions, nil
}

// ImportReader parses a statement from r; name is used in errors and logs.
// Entries that cannot be read are skipped with a warning, pending entries
// are ignored.
func (i *CAMTImporter) ImportReader(r io.Reader, name string) ([]models.Transaction, error) {
	root, err := xmlpath.Parse(r)
	if err != nil {
		return nil, &finerrors.UnsupportedFormatError{Kind: "statement", Format: name, Expected: []string{FormatCAMT053}}
	}
	if _, ok := xmlpath.MustCompile("//BkToCstmrStmt/Stmt").String(root); !ok {
		return nil, &finerrors.UnsupportedFormatError{Kind: "statement", Format: name, Expected: []string{FormatCAMT053}}
	}

	transactions := []models.Transaction{}
	iter := xpathEntries.Iter(root)
	for index := 0; iter.Next(); index++ {
		entry := iter.Node()
		if strings.EqualFold(value(xpathStatus, entry), "PDNG") {
			i.logger.Debug("Skipping pending entry", logging.Field{Key: logging.FieldIndex, Value: index})
			continue
		}
		tx, err := i.entryToTransaction(entry, index)
		if err != nil {
			i.logger.WithError(err).Warn("Skipping unreadable statement entry",
				logging.Field{Key: logging.FieldFile, Value: name})
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func (i *CAMTImporter) entryToTransaction(entry *xmlpath.Node, index int) (models.Transaction, error) {
	amount, err := currencyutils.ParseAmount(value(xpathAmount, entry))
	if err != nil {
		return models.Transaction{}, &finerrors.ValidationError{Record: "entry", Index: index, Field: "Amt", Reason: err.Error()}
	}
	indicator := strings.ToUpper(value(xpathCreditDebit, entry))
	switch indicator {
	case "DBIT":
		amount = amount.Abs().Neg()
	case "CRDT":
		amount = amount.Abs()
	default:
		return models.Transaction{}, &finerrors.ValidationError{Record: "entry", Index: index, Field: "CdtDbtInd", Reason: fmt.Sprintf("unknown indicator '%s'", indicator)}
	}

	rawDate := firstNonEmpty(value(xpathBookingDate, entry), value(xpathBookingDtTm, entry), value(xpathValueDate, entry))
	date, err := dateutils.ParseDate(rawDate)
	if err != nil {
		return models.Transaction{}, &finerrors.ValidationError{Record: "entry", Index: index, Field: "BookgDt", Reason: err.Error()}
	}

	party := value(xpathCreditorName, entry)
	if indicator == "CRDT" {
		party = value(xpathDebtorName, entry)
	}
	info := firstNonEmpty(value(xpathRemittance, entry), value(xpathAddTxInfo, entry), value(xpathAddEntryInfo, entry))
	description := joinNonEmpty(" - ", party, info)

	id := firstNonEmpty(value(xpathAcctSvcRef, entry), value(xpathTxAcctSvcRef, entry))
	if id == "" {
		id = entryID(date, amount.String(), description)
	}

	category, necessity := i.categorizer.Categorize(description)
	if amount.IsPositive() && category == models.CategoryOther {
		category = models.CategorySalary
	}

	return models.Transaction{
		ID:          id,
		Amount:      amount,
		Description: description,
		Category:    category,
		Necessity:   necessity,
		Date:        date,
	}, nil
}

// entryID derives a stable id for entries without a bank reference, so that
// importing the same statement twice adds nothing.
func entryID(date time.Time, amount, description string) string {
	key := strings.Join([]string{date.UTC().Format(time.RFC3339), amount, description}, "|")
	return uuid.NewSHA1(entryNamespace, []byte(key)).String()
}

// value returns the trimmed, whitespace-collapsed text at path, or "".
func value(path *xmlpath.Path, node *xmlpath.Node) string {
	s, ok := path.String(node)
	if !ok {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v != "" && (len(parts) == 0 || parts[len(parts)-1] != v) {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
