package hunks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/src/x.cpp b/src/x.cpp
index 1111111..abc123 100644
--- a/src/x.cpp
+++ b/src/x.cpp
@@ -10,0 +11,3 @@
+int a;
+int b;
+int c;
`

func TestParseSingleHunk(t *testing.T) {
	set, err := Parse(sampleDiff, 1)
	require.NoError(t, err)

	key := FileKey{Path: "src/x.cpp", BlobID: "abc123"}
	require.Equal(t, []FileKey{key}, set.Files())
	assert.Equal(t, []LineRange{{Start: 11, End: 13}}, set.Ranges(key))
}

func TestParseOmittedCountIsOneLine(t *testing.T) {
	diff := `index 0000000..feed01 100644
--- a/a/b.cc
+++ b/a/b.cc
@@ -4 +4 @@
-int x;
+int x ;
`
	set, err := Parse(diff, 1)
	require.NoError(t, err)

	key := FileKey{Path: "a/b.cc", BlobID: "feed01"}
	assert.Equal(t, []LineRange{{Start: 4, End: 4}}, set.Ranges(key))
}

func TestParseZeroCountSkipped(t *testing.T) {
	diff := `index 0000000..feed01 100644
--- a/a/b.cc
+++ b/a/b.cc
@@ -4,2 +3,0 @@
-int x;
-int y;
`
	set, err := Parse(diff, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestParseMergesHunksPerFile(t *testing.T) {
	diff := `index 0000000..cafe22 100644
--- a/lib/util.cpp
+++ b/lib/util.cpp
@@ -1,1 +1,2 @@
+// hdr
 void f();
@@ -20,0 +22,5 @@
+void g() {
+}
`
	set, err := Parse(diff, 1)
	require.NoError(t, err)

	key := FileKey{Path: "lib/util.cpp", BlobID: "cafe22"}
	require.Equal(t, 1, set.Len())
	assert.Equal(t, []LineRange{{Start: 1, End: 2}, {Start: 22, End: 26}}, set.Ranges(key))
}

func TestParseMultipleFilesKeepEncounterOrder(t *testing.T) {
	diff := `index 0000000..aaa111 100644
--- a/z.cpp
+++ b/z.cpp
@@ -1,0 +2,1 @@
+int z;
index 0000000..bbb222 100644
--- a/a.cpp
+++ b/a.cpp
@@ -5,0 +6,2 @@
+int a;
+int b;
`
	set, err := Parse(diff, 1)
	require.NoError(t, err)

	require.Equal(t, []FileKey{
		{Path: "z.cpp", BlobID: "aaa111"},
		{Path: "a.cpp", BlobID: "bbb222"},
	}, set.Files())
}

func TestParseStripComponents(t *testing.T) {
	diff := `index 0000000..abc123 100644
--- a/b/c/file.cpp
+++ a/b/c/file.cpp
@@ -1,0 +1,1 @@
+x
`
	set, err := Parse(diff, 1)
	require.NoError(t, err)
	require.Equal(t, "b/c/file.cpp", set.Files()[0].Path)

	set, err = Parse(diff, 0)
	require.NoError(t, err)
	require.Equal(t, "a/b/c/file.cpp", set.Files()[0].Path)
}

func TestParseStripTooDeepFails(t *testing.T) {
	diff := `index 0000000..abc123 100644
--- a/file.cpp
+++ b/file.cpp
@@ -1,0 +1,1 @@
+x
`
	_, err := Parse(diff, 3)
	assert.Error(t, err)
}

func TestParseHunkBeforeHeaderFails(t *testing.T) {
	diff := `@@ -1,0 +1,1 @@
+x
`
	_, err := Parse(diff, 1)
	assert.ErrorContains(t, err, "malformed diff")
}

func TestParseEmptyInput(t *testing.T) {
	set, err := Parse("", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestFileSetAddKeepsRangeOrder(t *testing.T) {
	set := NewFileSet()
	key := FileKey{Path: "p", BlobID: "b"}
	set.Add(key, LineRange{Start: 9, End: 9})
	set.Add(key, LineRange{Start: 2, End: 4})

	// Unsorted and overlapping ranges pass through unmodified.
	assert.Equal(t, []LineRange{{9, 9}, {2, 4}}, set.Ranges(key))
}
