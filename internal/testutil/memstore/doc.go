// Package memstore хранилища в памяти для тестов сервисов и usecase-ов
// Повторяют контракты Postgres репозиториев, включая ошибки "не найдено"
package memstore
