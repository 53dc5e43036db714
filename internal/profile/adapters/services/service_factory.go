// Package services содержит адаптеры внешних сервисов: JWT, проверку Google ID-токенов и часы.
package services

import (
	"devprofile/internal/profile/domain/services"
	svc "devprofile/internal/profile/ports/services"
)

// ServiceFactory создает сервисы аутентификации с общими часами.
type ServiceFactory struct {
	clock          svc.Clock
	tokenService   svc.TokenService
	googleVerifier svc.GoogleVerifier
}

// NewServiceFactory создает фабрику. Пустой clock заменяется SystemClock.
func NewServiceFactory(jwtConfig services.JWTConfig, googleConfig GoogleVerifierConfig, clock svc.Clock) *ServiceFactory {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ServiceFactory{
		clock:          clock,
		tokenService:   NewJWT(jwtConfig, clock),
		googleVerifier: NewGoogleVerifier(googleConfig, clock),
	}
}

// Clock возвращает часы приложения.
func (f *ServiceFactory) Clock() svc.Clock {
	return f.clock
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenService
}

// GoogleVerifier возвращает верификатор Google ID-токенов.
func (f *ServiceFactory) GoogleVerifier() svc.GoogleVerifier {
	return f.googleVerifier
}
