// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	linkDomain "github.com/afrireads/bookgate/internal/accesslink/domain"
)

// BookSummary represents the joined book data carried on access link responses.
type BookSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	FileType string `json:"file_type"`
	Author   string `json:"author"`
}

// AccessLinkResponse represents an access link in API responses. The bearer
// token never appears here; CreateAccessLinkResponse carries it exactly once.
type AccessLinkResponse struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"user_id"`
	BookID        string                   `json:"book_id"`
	ExpiresAt     time.Time                `json:"expires_at"`
	RevokedAt     *time.Time               `json:"revoked_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	Book          *BookSummary             `json:"book,omitempty"`
	RemainingTime *linkDomain.RemainingTime `json:"remaining_time,omitempty"`
}

// CreateAccessLinkResponse is the issuance response. AccessToken is the plain
// bearer token, shown only in this response; ShareURL embeds it for sharing.
type CreateAccessLinkResponse struct {
	AccessLinkResponse
	AccessToken string `json:"access_token"`
	ShareURL    string `json:"share_url"`
}

// ValidateAccessLinkResponse is the validation verdict for operators. Reason
// is set exactly when Valid is false.
type ValidateAccessLinkResponse struct {
	Valid      bool                `json:"valid"`
	Reason     string              `json:"reason,omitempty"`
	AccessLink *AccessLinkResponse `json:"access_link,omitempty"`
}

// ListAccessLinksResponse represents a paginated list of access links.
type ListAccessLinksResponse struct {
	Data []AccessLinkResponse `json:"data"`
}

// MapAccessLinkToResponse converts a domain access link to an API response,
// computing the live countdown from the deadline.
func MapAccessLinkToResponse(link *linkDomain.AccessLink) AccessLinkResponse {
	remaining := linkDomain.GetRemainingTime(link.ExpiresAt)

	response := AccessLinkResponse{
		ID:            link.ID.String(),
		UserID:        link.UserID.String(),
		BookID:        link.BookID.String(),
		ExpiresAt:     link.ExpiresAt,
		RevokedAt:     link.RevokedAt,
		CreatedAt:     link.CreatedAt,
		RemainingTime: &remaining,
	}

	if link.Book != nil {
		response.Book = &BookSummary{
			ID:       link.Book.ID.String(),
			Title:    link.Book.Title,
			FileType: link.Book.FileType,
			Author:   link.Book.AuthorName,
		}
	}

	return response
}

// MapCreateOutputToResponse converts an issuance output to an API response.
func MapCreateOutputToResponse(output *linkDomain.CreateAccessLinkOutput) CreateAccessLinkResponse {
	return CreateAccessLinkResponse{
		AccessLinkResponse: MapAccessLinkToResponse(output.AccessLink),
		AccessToken:        output.PlainToken,
		ShareURL:           output.ShareURL,
	}
}

// MapValidationResultToResponse converts a validation verdict to an API response.
func MapValidationResultToResponse(result *linkDomain.ValidationResult) ValidateAccessLinkResponse {
	if !result.IsValid {
		return ValidateAccessLinkResponse{
			Valid:  false,
			Reason: result.Reason,
		}
	}

	link := MapAccessLinkToResponse(result.AccessLink)
	return ValidateAccessLinkResponse{
		Valid:      true,
		AccessLink: &link,
	}
}

// MapAccessLinksToListResponse converts a slice of domain links to a list response.
func MapAccessLinksToListResponse(links []*linkDomain.AccessLink) ListAccessLinksResponse {
	data := make([]AccessLinkResponse, 0, len(links))
	for _, link := range links {
		data = append(data, MapAccessLinkToResponse(link))
	}

	return ListAccessLinksResponse{
		Data: data,
	}
}
