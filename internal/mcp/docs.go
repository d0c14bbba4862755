package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "photosift://docs/concepts",
		Name:        "docs_concepts",
		Title:       "Concepts: projects, rounds, selections",
		Description: "The culling model: how candidates, kept sets, and rounds relate.",
		Content: `# Concepts

- Project: one image directory plus its round history. Exactly one project is
  active at a time; all tools operate on the active project.
- Round: a pass over a candidate list. Round 1's candidates are the image
  files in the project's source directory; round N's candidates are exactly
  the files kept in round N-1.
- Kept set (selections): the files toggled on in the current round, in the
  order they were kept.
- Viewed file: the candidate the UI is showing. When it is unset or no
  longer a candidate, the first candidate is picked automatically.

Selections are never validated against the candidate list: editing an
earlier round after a later one was populated can leave the later round
referencing files that are no longer reachable. That is accepted, visible
state, not an error.
`,
	},
	{
		URI:         "photosift://docs/workflows/culling",
		Name:        "docs_culling_workflow",
		Title:       "Workflow: culling a directory",
		Description: "The default tool sequence for narrowing a directory down to a final set.",
		Content: `# Culling workflow

1) Orient: call get_active_project to see the current round, its candidates,
   and what is already kept.
2) Keep/drop: call toggle_selection per filename. Toggling twice returns to
   the original state.
3) Record: call finish_round to export the round's kept set as a JSON file
   next to the images. Optional but cheap.
4) Advance: call next_round. It fails when nothing is kept. If the next
   round already holds selections from an earlier pass, the call reports
   confirmation_required instead of advancing; call next_round with
   force=true to clear exactly that round's stale selections and advance.
5) Repeat until the kept set is small enough.

switch_round jumps to any round, forward or backward, without guards.
Selections already recorded in the target round are preserved as-is.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
