/*
Package utils provides decorators shared by all applications: panic
recovery, transaction logging, savepoints and action tagging.
*/
package utils
