package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"legalscan/internal/service"
)

type analyzeTextRequest struct {
	Text string `json:"text"`
}

type compareRequest struct {
	DocumentID1 string `json:"document_id_1"`
	DocumentID2 string `json:"document_id_2"`
}

// AnalyzeDocument runs the analysis pipeline on a stored document.
func AnalyzeDocument(analysisSvc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOrAbort(c)
		if err != nil {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return err
		}

		analysis, err := analysisSvc.Analyze(c.UserContext(), actor, id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(analysis)
	}
}

// GetAnalysis returns the latest analysis for a document.
func GetAnalysis(analysisSvc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOrAbort(c)
		if err != nil {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return err
		}

		analysis, err := analysisSvc.GetByDocument(c.UserContext(), actor, id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(analysis)
	}
}

// AnalyzeText runs the analysis pipeline on pasted plain text.
func AnalyzeText(analysisSvc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOrAbort(c)
		if err != nil {
			return err
		}

		var req analyzeTextRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		analysis, err := analysisSvc.AnalyzeText(c.UserContext(), actor, req.Text)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(analysis)
	}
}

// ListReports lists the caller's past analyses, newest first.
func ListReports(analysisSvc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOrAbort(c)
		if err != nil {
			return err
		}

		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := analysisSvc.History(c.UserContext(), actor, limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// RiskReport aggregates the caller's analyses by risk level.
func RiskReport(analysisSvc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOrAbort(c)
		if err != nil {
			return err
		}

		overview, err := analysisSvc.RiskOverview(c.UserContext(), actor)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(overview)
	}
}

// ClearReports deletes all of the caller's analyses.
func ClearReports(analysisSvc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOrAbort(c)
		if err != nil {
			return err
		}

		deleted, err := analysisSvc.ClearHistory(c.UserContext(), actor)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"deleted": deleted})
	}
}

// CompareDocuments diffs two stored documents.
func CompareDocuments(compareSvc service.CompareService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorOrAbort(c)
		if err != nil {
			return err
		}

		var req compareRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.DocumentID1 == "" || req.DocumentID2 == "" {
			return writeError(c, fiber.StatusBadRequest, "IDS_REQUIRED", "document_id_1 and document_id_2 are required")
		}

		cmp, err := compareSvc.Compare(c.UserContext(), actor, req.DocumentID1, req.DocumentID2)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(cmp)
	}
}
