package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Transaction errors
var (
	ErrDescriptionMissing      = errors.New("the description must not be empty")
	ErrAmountZero              = errors.New("the amount must not be zero")
	ErrTransactionIsRecurring  = errors.New("this transaction is generated by a recurring expense, delete the recurring expense to remove it")
	ErrRecurringExpenseMissing = errors.New("no existing recurring expense with specified RecurringExpenseID")
)

// RecurringExpense errors
var (
	ErrDayOutOfRange       = errors.New("the day of month must be between 1 and 31")
	ErrTerminationInvalid  = errors.New("the termination must be either END_DATE or INSTALLMENTS")
	ErrEndDateMissing      = errors.New("recurring expenses terminated by date need an end date")
	ErrInstallmentsMissing = errors.New("recurring expenses terminated by count need at least one installment")
)
