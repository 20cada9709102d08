package rewrite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports/mocks"
	"go.trai.ch/squeeze/internal/engine/pipeline"
	"go.trai.ch/squeeze/internal/engine/rewrite"
	"go.uber.org/mock/gomock"
)

const stamp = "1234567890"

func fixture(t *testing.T, css string) (string, string) {
	t.Helper()
	root := t.TempDir()
	mtime := time.Unix(1234567890, 0)
	for _, name := range []string{"a.png", "b.png"} {
		path := filepath.Join(root, "images", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o600))
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}
	stylesheet := filepath.Join(root, "css", "site.css")
	require.NoError(t, os.MkdirAll(filepath.Dir(stylesheet), 0o750))
	require.NoError(t, os.WriteFile(stylesheet, []byte(css), 0o600))
	return root, stylesheet
}

func runRewriter(t *testing.T, r *rewrite.Rewriter, stylesheet string) string {
	t.Helper()
	done, err := r.Run(context.Background(), &pipeline.Artifact{Path: stylesheet})
	require.NoError(t, err)
	assert.True(t, done)
	content, err := os.ReadFile(stylesheet)
	require.NoError(t, err)
	return string(content)
}

func TestRewriter_SoftByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, stylesheet := fixture(t, "a { background: url(../images/a.png); }\nb { background: url('../images/a.png'); }")

	got := runRewriter(t, rewrite.New(mocks.NewMockLogger(ctrl)), stylesheet)

	assert.Equal(t, "a { background: url(../images/a.png?jcb="+stamp+"); }\n"+
		"b { background: url('../images/a.png?jcb="+stamp+"'); }", got)
}

func TestRewriter_RebustsStaleToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, stylesheet := fixture(t, "a { background: url(../images/a.png?jcb=1); }")

	got := runRewriter(t, rewrite.New(mocks.NewMockLogger(ctrl)), stylesheet)

	assert.Equal(t, "a { background: url(../images/a.png?jcb="+stamp+"); }", got)
}

func TestRewriter_Hard(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, stylesheet := fixture(t, "a { background: url(../images/a.png); }")

	r := rewrite.New(mocks.NewMockLogger(ctrl), rewrite.WithCacheBuster(domain.CacheBusterHard, "jcb"))
	got := runRewriter(t, r, stylesheet)

	assert.Equal(t, "a { background: url(../images/a-jcb"+stamp+".png); }", got)
}

func TestRewriter_Rails(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, stylesheet := fixture(t, "a { background: url(../images/a.png); }")

	r := rewrite.New(mocks.NewMockLogger(ctrl), rewrite.WithCacheBuster(domain.CacheBusterRails, "jcb"))
	got := runRewriter(t, r, stylesheet)

	assert.Equal(t, "a { background: url(../images/a.png?"+stamp+"); }", got)
}

func TestRewriter_MissingFileWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	css := "a { background: url(../images/missing.png); }"
	_, stylesheet := fixture(t, css)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "../images/missing.png")
	})

	assert.Equal(t, css, runRewriter(t, rewrite.New(logger), stylesheet))
}

func TestRewriter_RootRelativeWithoutDocumentRootWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	css := "a { background: url(/images/a.png); }"
	_, stylesheet := fixture(t, css)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, domain.ErrNoDocumentRoot.Error())
	})

	assert.Equal(t, css, runRewriter(t, rewrite.New(logger), stylesheet))
}

func TestRewriter_LeavesForeignReferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	css := "a { background: url(data:image/gif;base64,R0lG); }\n" +
		"b { background: url(http://elsewhere.com/a.png); }\n" +
		"c { background: url(//cdn.elsewhere.com/a.png); }"
	_, stylesheet := fixture(t, css)

	assert.Equal(t, css, runRewriter(t, rewrite.New(mocks.NewMockLogger(ctrl)), stylesheet))
}

func TestRewriter_LocalHost(t *testing.T) {
	ctrl := gomock.NewController(t)
	root, stylesheet := fixture(t, "a { background: url(http://www.example.com/images/a.png); }")

	r := rewrite.New(mocks.NewMockLogger(ctrl),
		rewrite.WithDocumentRoot(root),
		rewrite.WithLocalHosts("www.example.com"),
	)
	got := runRewriter(t, r, stylesheet)

	assert.Equal(t, "a { background: url(http://www.example.com/images/a.png?jcb="+stamp+"); }", got)
}

func TestRewriter_RelativeMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	root, stylesheet := fixture(t, "a { background: url(/images/a.png); }")

	r := rewrite.New(mocks.NewMockLogger(ctrl),
		rewrite.WithCacheBuster(domain.CacheBusterNone, ""),
		rewrite.WithURLMode(domain.URLModeRelative),
		rewrite.WithDocumentRoot(root),
	)
	got := runRewriter(t, r, stylesheet)

	assert.Equal(t, "a { background: url(../images/a.png); }", got)
}

func TestRewriter_AbsoluteModeCyclesHosts(t *testing.T) {
	ctrl := gomock.NewController(t)
	root, stylesheet := fixture(t, "a { background: url(../images/a.png); }\n"+
		"b { background: url(../images/b.png); }\n"+
		"c { background: url(../images/a.png); }")

	r := rewrite.New(mocks.NewMockLogger(ctrl),
		rewrite.WithURLMode(domain.URLModeAbsolute),
		rewrite.WithDocumentRoot(root),
		rewrite.WithHosts("http://a.example.com", "b.example.com"),
	)
	got := runRewriter(t, r, stylesheet)

	assert.Equal(t, "a { background: url(http://a.example.com/images/a.png?jcb="+stamp+"); }\n"+
		"b { background: url(http://b.example.com/images/b.png?jcb="+stamp+"); }\n"+
		"c { background: url(http://a.example.com/images/a.png?jcb="+stamp+"); }", got)
}

func TestRewriter_Inactive(t *testing.T) {
	ctrl := gomock.NewController(t)
	css := "a { background: url(../images/missing.png); }"
	_, stylesheet := fixture(t, css)

	r := rewrite.New(mocks.NewMockLogger(ctrl), rewrite.WithCacheBuster(domain.CacheBusterNone, ""))

	assert.Equal(t, css, runRewriter(t, r, stylesheet))
}
