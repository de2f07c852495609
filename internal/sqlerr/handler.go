package sqlerr

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/placesapi/placesapi/internal/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrCode reports the driver-neutral category of err. Lost or refused
// connections are ConnectionFailure whichever driver reported them.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	if converted, ok := convert(err); ok {
		return converted.Code
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mysql.ErrInvalidConn) {
		return ConnectionFailure
	}

	return Other
}

// ConvertPgError normalizes a Postgres server error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// mysqlColumnRe pulls the column out of "Column 'name' cannot be null".
var mysqlColumnRe = regexp.MustCompile(`[Cc]olumn '([^']+)'`)

// ConvertMySQLError normalizes a MySQL server error. MySQL does not
// report the table, so only the column is recovered from the message.
func ConvertMySQLError(src *mysql.MySQLError) *Error {
	code := Other
	switch src.Number {
	case 1048:
		code = NotNullViolation
	case 1062:
		code = UniqueViolation
	case 1216, 1452:
		code = ForeignKeyViolation
	case 3819:
		code = CheckViolation
	case 1406:
		code = StringDataTooLong
	}

	var column string
	if m := mysqlColumnRe.FindStringSubmatch(src.Message); len(m) > 1 {
		column = m[1]
	}

	return &Error{
		Code:         code,
		Severity:     SeverityError,
		DatabaseCode: fmt.Sprintf("%d", src.Number),
		Message:      src.Message,
		ColumnName:   column,
		driverErr:    src,
	}
}

// sqliteTargetRe matches "NOT NULL constraint failed: places.name".
var sqliteTargetRe = regexp.MustCompile(`constraint failed: ([A-Za-z0-9_]+)\.([A-Za-z0-9_]+)`)

// ConvertSQLiteError normalizes a SQLite error using its extended result code.
func ConvertSQLiteError(src *sqlite.Error) *Error {
	code := Other
	switch src.Code() {
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		code = NotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		code = UniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		code = ForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		code = CheckViolation
	case sqlite3.SQLITE_CONSTRAINT:
		// Extended result codes disabled; fall back to the message.
		msg := src.Error()
		switch {
		case strings.Contains(msg, "NOT NULL constraint"):
			code = NotNullViolation
		case strings.Contains(msg, "UNIQUE constraint"):
			code = UniqueViolation
		case strings.Contains(msg, "FOREIGN KEY constraint"):
			code = ForeignKeyViolation
		case strings.Contains(msg, "CHECK constraint"):
			code = CheckViolation
		}
	}

	out := &Error{
		Code:         code,
		Severity:     SeverityError,
		DatabaseCode: fmt.Sprintf("%d", src.Code()),
		Message:      src.Error(),
		driverErr:    src,
	}
	if m := sqliteTargetRe.FindStringSubmatch(src.Error()); len(m) > 2 {
		out.TableName = m[1]
		out.ColumnName = m[2]
	}
	return out
}

// convert finds a driver error in err's chain and normalizes it.
func convert(err error) (*Error, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr), true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return ConvertMySQLError(myErr), true
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return ConvertSQLiteError(liteErr), true
	}

	return nil, false
}

// generateErrorCode builds <DOMAIN>_<ACTION>, e.g. PLACE_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, StringDataTooLong:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation, StringDataTooLong:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers a "<entity>_id" column, then the singular table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation understands "unique_<table>_<column>"
// and "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyRe.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a storage error into an *errs.HTTPError.
//
// HTTP errors pass through untouched. Constraint violations from any
// supported driver become 400s, missing rows 404s and connection
// failures 503s. Everything else is a generic 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if ErrCode(err) == ConnectionFailure {
		return errs.NewServiceUnavailableError("Database unavailable")
	}

	if sqlErr, ok := convert(err); ok {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

		case UniqueViolation:
			if columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName); columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation, StringDataTooLong:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
