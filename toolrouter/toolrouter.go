// Package toolrouter advertises and dispatches the bridge's five MCP
// tools (spec §4.10, §6), translating typed arguments into calls
// against the orchestrator and interact packages and converting every
// result through envelope.
//
// Grounded on the teacher's cmd/purify-mcp/main.go tool-registration
// idiom: mcp.NewTool + mcp.With* option builders, one handler closure
// per tool, request.RequireString/GetString for argument extraction.
package toolrouter

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/browserbridge/berrors"
	"github.com/use-agent/browserbridge/config"
	"github.com/use-agent/browserbridge/envelope"
	"github.com/use-agent/browserbridge/interact"
	"github.com/use-agent/browserbridge/orchestrator"
	"github.com/use-agent/browserbridge/pagepool"
)

// Register advertises the five tools on s and wires their handlers.
func Register(s *server.MCPServer, orch *orchestrator.Orchestrator, pool *pagepool.Pool, cfg *config.Config) {
	s.AddTool(mcp.NewTool("fetch_webpage",
		mcp.WithDescription("Fetch a web page through the user's real browser session, returning the processed page HTML and the URL it finally landed on. Handles authentication redirects transparently."),
		mcp.WithString("url", mcp.Description("The URL to fetch. If omitted, the configured default fetch URL is used.")),
		mcp.WithBoolean("removeUnnecessaryHTML", mcp.Description("Strip scripts, styles, comments and non-semantic attributes before returning HTML (default true)")),
		mcp.WithNumber("postLoadWait", mcp.Description("Milliseconds to wait after the page settles before reading HTML (default 1000)")),
	), handleFetchWebpage(orch, cfg))

	s.AddTool(mcp.NewTool("click_element",
		mcp.WithDescription("Click an element on a page already opened by fetch_webpage, identified by CSS selector or by visible text."),
		mcp.WithString("url", mcp.Required(), mcp.Description("The URL of the already-open page")),
		mcp.WithString("selector", mcp.Description("CSS selector of the element to click")),
		mcp.WithString("text", mcp.Description("Visible text substring identifying the element to click")),
		mcp.WithNumber("waitForElementTimeout", mcp.Description("Milliseconds to wait for the element (default 1000)")),
		mcp.WithBoolean("returnHtml", mcp.Description("Return the page HTML after clicking (default true)")),
		mcp.WithBoolean("removeUnnecessaryHTML", mcp.Description("Clean returned HTML (default true)")),
		mcp.WithNumber("postClickWait", mcp.Description("Milliseconds to wait after the click settles (default 1000)")),
	), handleClickElement(pool))

	s.AddTool(mcp.NewTool("type_text",
		mcp.WithDescription("Type text into an input element on a page already opened by fetch_webpage."),
		mcp.WithString("url", mcp.Required(), mcp.Description("The URL of the already-open page")),
		mcp.WithString("selector", mcp.Required(), mcp.Description("CSS selector of the input element")),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to type")),
		mcp.WithBoolean("clear", mcp.Description("Clear the existing value before typing (default true)")),
		mcp.WithNumber("typeDelay", mcp.Description("Milliseconds between keystrokes (default 50)")),
		mcp.WithNumber("waitForElementTimeout", mcp.Description("Milliseconds to wait for the element (default 5000)")),
		mcp.WithBoolean("returnHtml", mcp.Description("Return the page HTML after typing (default true)")),
		mcp.WithBoolean("removeUnnecessaryHTML", mcp.Description("Clean returned HTML (default true)")),
		mcp.WithNumber("postTypeWait", mcp.Description("Milliseconds to wait after typing settles (default 1000)")),
	), handleTypeText(pool))

	s.AddTool(mcp.NewTool("get_current_html",
		mcp.WithDescription("Read the current DOM of a page already opened by fetch_webpage, without navigating or interacting."),
		mcp.WithString("url", mcp.Required(), mcp.Description("The URL of the already-open page")),
		mcp.WithBoolean("removeUnnecessaryHTML", mcp.Description("Clean returned HTML (default true)")),
	), handleGetCurrentHTML(pool))

	s.AddTool(mcp.NewTool("close_tab",
		mcp.WithDescription("Close the browser tab associated with a URL previously opened by fetch_webpage."),
		mcp.WithString("url", mcp.Required(), mcp.Description("The URL of the page to close")),
	), handleCloseTab(pool))
}

// durationOrDefault reads a millisecond-valued argument, falling back
// to def when the caller omitted it.
func durationOrDefault(request mcp.CallToolRequest, arg string, def time.Duration) time.Duration {
	ms := request.GetInt(arg, int(def/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

func handleFetchWebpage(orch *orchestrator.Orchestrator, cfg *config.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url := request.GetString("url", "")
		if url == "" {
			url = cfg.Tool.DefaultFetchURL
		}
		if url == "" {
			return envelope.Error(berrors.InvalidArgument("url", "no url given and no default fetch URL configured")), nil
		}

		clean := request.GetBool("removeUnnecessaryHTML", true)
		postLoadWait := time.Duration(request.GetInt("postLoadWait", 1000)) * time.Millisecond

		result, err := orch.FetchWebpage(ctx, url, clean, postLoadWait)
		if err != nil {
			return envelope.Error(err), nil
		}

		structured := map[string]any{
			"currentUrl": result.CurrentURL,
			"html":       result.HTML,
			"nextSteps":  orchestrator.NextSteps,
		}
		return envelope.Success(fmt.Sprintf("fetched %s", result.CurrentURL), structured), nil
	}
}

func handleClickElement(pool *pagepool.Pool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return envelope.Error(berrors.InvalidArgument("url", "is required")), nil
		}
		selector := request.GetString("selector", "")
		text := request.GetString("text", "")
		if selector == "" && text == "" {
			return envelope.Error(berrors.InvalidArgument("selector/text", "one of selector or text must be provided")), nil
		}

		returnHTML := request.GetBool("returnHtml", true)
		clean := request.GetBool("removeUnnecessaryHTML", true)
		elementWait := durationOrDefault(request, "waitForElementTimeout", interact.DefaultClickElementWait)
		postWait := durationOrDefault(request, "postClickWait", interact.DefaultPostClickWait)

		result, err := interact.Click(pool, url, selector, text, elementWait, postWait, returnHTML, clean)
		if err != nil {
			return envelope.Error(err), nil
		}

		structured := map[string]any{
			"currentUrl": result.CurrentURL,
			"message":    "clicked element",
			"nextSteps":  orchestrator.NextSteps,
		}
		if returnHTML {
			structured["html"] = result.HTML
		} else {
			structured["html"] = nil
		}
		return envelope.Success(fmt.Sprintf("clicked element on %s", result.CurrentURL), structured), nil
	}
}

func handleTypeText(pool *pagepool.Pool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return envelope.Error(berrors.InvalidArgument("url", "is required")), nil
		}
		selector, err := request.RequireString("selector")
		if err != nil {
			return envelope.Error(berrors.InvalidArgument("selector", "is required")), nil
		}
		text, err := request.RequireString("text")
		if err != nil {
			return envelope.Error(berrors.InvalidArgument("text", "is required")), nil
		}

		clearFirst := request.GetBool("clear", true)
		returnHTML := request.GetBool("returnHtml", true)
		clean := request.GetBool("removeUnnecessaryHTML", true)
		elementWait := durationOrDefault(request, "waitForElementTimeout", interact.DefaultTypeElementWait)
		typeDelay := durationOrDefault(request, "typeDelay", interact.DefaultTypeDelay)
		postWait := durationOrDefault(request, "postTypeWait", interact.DefaultPostTypeWait)

		result, err := interact.Type(pool, url, selector, text, clearFirst, returnHTML, clean, elementWait, typeDelay, postWait)
		if err != nil {
			return envelope.Error(err), nil
		}

		structured := map[string]any{
			"currentUrl": result.CurrentURL,
			"selector":   selector,
			"textLength": len(text),
			"message":    "typed text",
			"nextSteps":  orchestrator.NextSteps,
		}
		if returnHTML {
			structured["html"] = result.HTML
		}
		return envelope.Success(fmt.Sprintf("typed text into %s on %s", selector, result.CurrentURL), structured), nil
	}
}

func handleGetCurrentHTML(pool *pagepool.Pool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return envelope.Error(berrors.InvalidArgument("url", "is required")), nil
		}
		clean := request.GetBool("removeUnnecessaryHTML", true)

		result, err := interact.GetCurrentHTML(pool, url, clean)
		if err != nil {
			return envelope.Error(err), nil
		}

		structured := map[string]any{
			"currentUrl": result.CurrentURL,
			"html":       result.HTML,
			"nextSteps":  orchestrator.NextSteps,
		}
		return envelope.Success(fmt.Sprintf("read current HTML for %s", result.CurrentURL), structured), nil
	}
}

func handleCloseTab(pool *pagepool.Pool) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return envelope.Error(berrors.InvalidArgument("url", "is required")), nil
		}

		hostname, found, err := interact.CloseTab(pool, url)
		if err != nil {
			return envelope.Error(err), nil
		}

		message := "no tab found for that URL"
		if found {
			message = "tab closed"
		}

		structured := map[string]any{
			"message":   message,
			"hostname":  hostname,
			"nextSteps": orchestrator.NextSteps,
		}
		return envelope.Success(message, structured), nil
	}
}
