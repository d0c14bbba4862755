package mcp

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avenclark/photosift/internal/app"
	"github.com/avenclark/photosift/internal/domain/round"
)

type emptyInput struct{}

type projectViewOutput struct {
	ProjectID   string            `json:"project_id" jsonschema:"Active project identifier"`
	ProjectName string            `json:"project_name" jsonschema:"Active project name"`
	SourceDir   string            `json:"source_directory" jsonschema:"Directory scanned for round 1 candidates"`
	AuxLabel    string            `json:"auxiliary_label" jsonschema:"Free-form project label"`
	Round       int               `json:"round" jsonschema:"Round currently open for toggling"`
	Candidates  []string          `json:"candidates" jsonschema:"Candidate filenames for the current round"`
	Selections  []string          `json:"selections" jsonschema:"Filenames kept in the current round"`
	ViewedFile  string            `json:"viewed_file" jsonschema:"Filename the UI is showing"`
	Projects    []app.ProjectInfo `json:"projects" jsonschema:"All projects with the active one marked"`
}

type createProjectInput struct {
	Name      string `json:"name,omitempty" jsonschema:"Project display name (defaulted if empty)"`
	SourceDir string `json:"source_directory,omitempty" jsonschema:"Directory holding the images to cull (defaulted if empty)"`
}

type projectIDInput struct {
	ID string `json:"id" jsonschema:"required,Project identifier"`
}

type updateSettingsInput struct {
	AuxLabel  string `json:"auxiliary_label,omitempty" jsonschema:"Free-form project label"`
	SourceDir string `json:"source_directory,omitempty" jsonschema:"New source directory (unchanged if empty)"`
}

type filenameInput struct {
	Filename string `json:"filename" jsonschema:"required,Candidate filename"`
}

type toggleOutput struct {
	Filename string `json:"filename" jsonschema:"Toggled filename"`
	Selected bool   `json:"selected" jsonschema:"Membership state after the toggle"`
}

type viewedOutput struct {
	ViewedFile string `json:"viewed_file" jsonschema:"Filename now remembered as viewed"`
}

type nextRoundInput struct {
	Force bool `json:"force,omitempty" jsonschema:"Clear the next round's stale selections instead of asking for confirmation"`
}

type nextRoundOutput struct {
	Advanced             bool `json:"advanced" jsonschema:"Whether the round was advanced"`
	ConfirmationRequired bool `json:"confirmation_required" jsonschema:"Set when the next round already holds selections; retry with force=true"`
	Round                int  `json:"round" jsonschema:"Round open after the call"`
}

type finishRoundOutput struct {
	Path string `json:"path" jsonschema:"Path of the exported snapshot file"`
}

type switchRoundInput struct {
	Round int `json:"round" jsonschema:"required,Round to open; any positive number is accepted"`
}

func textResult(format string, args ...any) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

func registerTools(server *sdkmcp.Server, a *app.App) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_active_project",
		Description: "Get the active project's current round: candidates, kept selections, and the viewed file.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, projectViewOutput, error) {
		v := a.GetActiveProjectView(ctx)
		out := projectViewOutput{
			ProjectID:   v.ProjectID,
			ProjectName: v.ProjectName,
			SourceDir:   v.SourceDir,
			AuxLabel:    v.AuxLabel,
			Round:       v.Round,
			Candidates:  v.Candidates,
			Selections:  v.Selections,
			ViewedFile:  v.ViewedFile,
			Projects:    v.Projects,
		}
		return textResult("%s: round %d, %d kept of %d candidates",
			out.ProjectName, out.Round, len(out.Selections), len(out.Candidates)), out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new culling project and make it active.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args createProjectInput) (*sdkmcp.CallToolResult, projectIDInput, error) {
		p, err := a.CreateProject(ctx, args.Name, args.SourceDir)
		if err != nil {
			return nil, projectIDInput{}, err
		}
		return textResult("created project %s (%s)", p.Name, p.ID), projectIDInput{ID: p.ID}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "switch_project",
		Description: "Make another project active.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args projectIDInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		if err := a.SwitchProject(ctx, args.ID); err != nil {
			return nil, emptyInput{}, err
		}
		return textResult("switched to project %s", args.ID), emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project. The last remaining project cannot be deleted.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args projectIDInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		if err := a.DeleteProject(ctx, args.ID); err != nil {
			return nil, emptyInput{}, err
		}
		return textResult("deleted project %s", args.ID), emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_settings",
		Description: "Update the active project's label and source directory.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args updateSettingsInput) (*sdkmcp.CallToolResult, emptyInput, error) {
		if err := a.UpdateSettings(ctx, args.AuxLabel, args.SourceDir); err != nil {
			return nil, emptyInput{}, err
		}
		return textResult("settings updated"), emptyInput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_selection",
		Description: "Keep or drop a candidate in the current round. Flips membership and reports the new state.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args filenameInput) (*sdkmcp.CallToolResult, toggleOutput, error) {
		selected, err := a.ToggleSelection(ctx, args.Filename)
		if err != nil {
			return nil, toggleOutput{}, err
		}
		state := "dropped"
		if selected {
			state = "kept"
		}
		return textResult("%s %s", state, args.Filename), toggleOutput{Filename: args.Filename, Selected: selected}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_viewed_file",
		Description: "Remember a candidate as the one currently being shown.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args filenameInput) (*sdkmcp.CallToolResult, viewedOutput, error) {
		viewed, err := a.SetViewedFile(ctx, args.Filename)
		if err != nil {
			return nil, viewedOutput{}, err
		}
		return textResult("viewing %s", viewed), viewedOutput{ViewedFile: viewed}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "next_round",
		Description: "Advance to the next round. Fails when nothing is kept; asks for confirmation when the next round already holds selections.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args nextRoundInput) (*sdkmcp.CallToolResult, nextRoundOutput, error) {
		err := a.NextRound(ctx, args.Force)
		if errors.Is(err, round.ErrConfirmRequired) {
			v := a.GetActiveProjectView(ctx)
			out := nextRoundOutput{ConfirmationRequired: true, Round: v.Round}
			return textResult("round %d already has selections; call next_round with force=true to clear them and advance", v.Round+1), out, nil
		}
		if err != nil {
			return nil, nextRoundOutput{}, err
		}
		v := a.GetActiveProjectView(ctx)
		return textResult("advanced to round %d", v.Round), nextRoundOutput{Advanced: true, Round: v.Round}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "finish_round",
		Description: "Export the current round's kept set as a JSON snapshot in the project's source directory.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, finishRoundOutput, error) {
		path, err := a.FinishRound(ctx)
		if err != nil {
			return nil, finishRoundOutput{}, err
		}
		return textResult("snapshot written to %s", path), finishRoundOutput{Path: path}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "switch_round",
		Description: "Jump directly to a round, forward or backward. Existing selections there are preserved as-is.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, args switchRoundInput) (*sdkmcp.CallToolResult, nextRoundOutput, error) {
		if err := a.SwitchRound(ctx, args.Round); err != nil {
			return nil, nextRoundOutput{}, err
		}
		return textResult("switched to round %d", args.Round), nextRoundOutput{Advanced: true, Round: args.Round}, nil
	})
}
